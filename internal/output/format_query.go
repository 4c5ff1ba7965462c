package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/itchyny/gojq"
)

func newJSONEncoder(w io.Writer, indent bool) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc
}

// printJSON outputs data as JSON, indented unless --compact-json is set. A
// --query filter writes one JSON value per result instead.
func (p *Printer) printJSON(ctx context.Context, data interface{}) error {
	enc := newJSONEncoder(p.w, !CompactJSONFromContext(ctx))
	if query := QueryFromContext(ctx); query != "" {
		return evalQuery(query, data, enc.Encode)
	}
	return enc.Encode(data)
}

// printNDJSON outputs one compact JSON value per line: each list element, or
// each --query result.
func (p *Printer) printNDJSON(ctx context.Context, data interface{}) error {
	enc := newJSONEncoder(p.w, false)
	if query := QueryFromContext(ctx); query != "" {
		return evalQuery(query, data, enc.Encode)
	}

	normalized, err := normalizeToInterface(data)
	if err != nil {
		return err
	}
	items, ok := normalized.([]interface{})
	if !ok {
		return enc.Encode(normalized)
	}
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return err
		}
	}
	return nil
}

// runQueryRaw collects every result of query over data for formats that
// draw the whole result set at once.
func runQueryRaw(query string, data interface{}) ([]interface{}, error) {
	var results []interface{}
	err := evalQuery(query, data, func(v interface{}) error {
		results = append(results, v)
		return nil
	})
	return results, err
}

// evalQuery runs the jq filter over data and passes each result to yield.
// The filter is normalized again here; the prerun hook already did so for
// flag input and normalizing is idempotent.
func evalQuery(query string, data interface{}, yield func(interface{}) error) error {
	normalized, err := normalizeToInterface(data)
	if err != nil {
		return fmt.Errorf("query error: %w", err)
	}

	query, _ = NormalizeQuery(query)
	parsed, err := gojq.Parse(query)
	if err != nil {
		return invalidQuery(err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return invalidQuery(err)
	}

	iter := code.Run(normalized)
	for {
		v, ok := iter.Next()
		if !ok {
			return nil
		}
		if qerr, isErr := v.(error); isErr {
			return fmt.Errorf("query error: %s", queryErrorMessage(qerr))
		}
		if err := yield(v); err != nil {
			return err
		}
	}
}

func invalidQuery(err error) error {
	if strings.Contains(strings.ToLower(err.Error()), "unexpected eof") {
		return fmt.Errorf("invalid --query: %w\nHint: query looks incomplete; quote it fully", err)
	}
	return fmt.Errorf("invalid --query: %w", err)
}

// queryErrorMessage returns err's message. Some gojq runtime errors panic in
// Error() on typed values; the panic payload is cut to its stable prefix so
// the offending value is not dumped.
func queryErrorMessage(err error) (msg string) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		var raw string
		switch v := r.(type) {
		case string:
			raw = v
		case error:
			raw = v.Error()
		}
		if i := strings.Index(raw, " ("); i > 0 {
			raw = raw[:i]
		}
		msg = strings.TrimSpace(raw)
		if msg == "" {
			msg = fmt.Sprintf("%T", err)
		}
	}()

	msg = strings.TrimSpace(err.Error())
	if msg == "" {
		msg = fmt.Sprintf("%T", err)
	}
	return msg
}
