package jobs

import (
	"strings"

	"github.com/salmonumbrella/grid-cli/internal/display"
)

// Priority is the urgency of a job request.
type Priority int

const (
	PriorityNone Priority = iota
	PriorityHigh
	PriorityMedium
	PriorityLow
)

// Priorities lists the known priorities, highest first.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// ParsePriority matches s case-insensitively. Blank input is PriorityNone;
// ok is false for unknown labels.
func ParsePriority(s string) (Priority, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PriorityNone, true
	}
	for _, p := range Priorities {
		if strings.EqualFold(p.String(), s) {
			return p, true
		}
	}
	return PriorityNone, false
}

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	case PriorityNone:
		return ""
	default:
		return ""
	}
}

// Tone returns the badge colour for the priority.
func (p Priority) Tone() display.Tone {
	switch p {
	case PriorityHigh:
		return display.ToneRed
	case PriorityMedium:
		return display.ToneYellow
	case PriorityLow:
		return display.ToneBlue
	case PriorityNone:
		return display.ToneNone
	default:
		return display.ToneNone
	}
}

// PriorityLabels returns the labels of Priorities.
func PriorityLabels() []string {
	out := make([]string, len(Priorities))
	for i, p := range Priorities {
		out[i] = p.String()
	}
	return out
}
