// Package display defines the decorated cell values formatters emit and view
// layers render: badges and links. Every value stringifies to its plain label
// so views that ignore decoration still show the right text.
package display

import (
	"fmt"
	"strings"
)

// Tone is the colour category of a badge.
type Tone int

const (
	// ToneNone renders the label without colour.
	ToneNone Tone = iota
	ToneYellow
	ToneBlue
	ToneGreen
	ToneRed
)

// String returns the tone name.
func (t Tone) String() string {
	switch t {
	case ToneNone:
		return "none"
	case ToneYellow:
		return "yellow"
	case ToneBlue:
		return "blue"
	case ToneGreen:
		return "green"
	case ToneRed:
		return "red"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// Badge is a short coloured label, e.g. a status or priority.
type Badge struct {
	Label string `json:"label"`
	Tone  Tone   `json:"-"`
}

func (b Badge) String() string { return b.Label }

// IsZero reports whether the badge has no label.
func (b Badge) IsZero() bool { return strings.TrimSpace(b.Label) == "" }

// Link is a hyperlink cell.
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

func (l Link) String() string { return l.Label }

// IsZero reports whether the link has no destination.
func (l Link) IsZero() bool { return strings.TrimSpace(l.Href) == "" }

// NewLink builds a link labelled with value. Values without a scheme get
// https:// prepended. Blank values return the zero Link.
func NewLink(value string) Link {
	value = strings.TrimSpace(value)
	if value == "" {
		return Link{}
	}
	href := value
	if !strings.Contains(href, "://") {
		href = "https://" + href
	}
	return Link{Label: value, Href: href}
}

// Kind names the decoration of a display value: "badge", "link" or "text".
func Kind(v any) string {
	switch v.(type) {
	case Badge, *Badge:
		return "badge"
	case Link, *Link:
		return "link"
	default:
		return "text"
	}
}

// Text returns the plain text of a display value. nil is "".
func Text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case *Badge:
		if x == nil {
			return ""
		}
		return x.Label
	case *Link:
		if x == nil {
			return ""
		}
		return x.Label
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
