package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// MaxPadding bounds the number of blank rows a sheet may be padded with.
const MaxPadding = 1000

// amountRegex matches comma-grouped amounts such as 6,200,000 or 1200.50.
var amountRegex = regexp.MustCompile(`^(\d{1,3}(,\d{3})*|\d+)(\.\d+)?$`)

// NonEmpty validates that a required string field is not empty.
func NonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s: cannot be empty", field)
	}
	return nil
}

// Padding validates a blank-row padding count.
func Padding(n int) error {
	if n < 0 {
		return fmt.Errorf("padding: must be at least 0, got %d", n)
	}
	if n > MaxPadding {
		return fmt.Errorf("padding: must be at most %d, got %d", MaxPadding, n)
	}
	return nil
}

// Date validates that dateStr matches layout (DD-MM-YYYY when layout is empty).
func Date(field, dateStr, layout string) error {
	if dateStr == "" {
		return fmt.Errorf("%s: cannot be empty", field)
	}
	if layout == "" {
		layout = "02-01-2006"
	}
	if _, err := time.Parse(layout, dateStr); err != nil {
		return fmt.Errorf("%s: must be a date like %s, got %q", field, layout, dateStr)
	}
	return nil
}

// Host validates a web address. A bare host such as www.example.com is
// accepted and treated as https.
func Host(field, value string) error {
	if value == "" {
		return fmt.Errorf("%s: cannot be empty", field)
	}
	raw := value
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	parsedURL, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: must be a valid URL, got error: %v", field, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s: must use http or https, got %q", field, value)
	}
	host := parsedURL.Hostname()
	if host == "" || !strings.Contains(host, ".") || strings.ContainsAny(host, " _") {
		return fmt.Errorf("%s: must have a host name, got %q", field, value)
	}
	return nil
}

// Amount validates a comma-grouped number such as 6,200,000.
func Amount(field, value string) error {
	if value == "" {
		return fmt.Errorf("%s: cannot be empty", field)
	}
	if !amountRegex.MatchString(value) {
		return fmt.Errorf("%s: must be a number like 6,200,000, got %q", field, value)
	}
	return nil
}

// OneOf validates that value is one of allowed.
func OneOf(field, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s: must be one of %s, got %q", field, strings.Join(allowed, ", "), value)
}
