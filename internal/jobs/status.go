package jobs

import (
	"strings"

	"github.com/salmonumbrella/grid-cli/internal/display"
)

// Status is the progress state of a job request.
type Status int

const (
	StatusNone Status = iota
	StatusInProcess
	StatusNeedToStart
	StatusComplete
	StatusBlocked
)

// Statuses lists the known statuses in display order.
var Statuses = []Status{StatusInProcess, StatusNeedToStart, StatusComplete, StatusBlocked}

// ParseStatus matches s case-insensitively against the known labels.
// Blank input is StatusNone; ok is false for unknown labels.
func ParseStatus(s string) (Status, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return StatusNone, true
	}
	for _, st := range Statuses {
		if strings.EqualFold(st.String(), s) {
			return st, true
		}
	}
	return StatusNone, false
}

func (s Status) String() string {
	switch s {
	case StatusNone:
		return ""
	case StatusInProcess:
		return "In-process"
	case StatusNeedToStart:
		return "Need to start"
	case StatusComplete:
		return "Complete"
	case StatusBlocked:
		return "Blocked"
	default:
		return ""
	}
}

// Tone returns the badge colour for the status.
func (s Status) Tone() display.Tone {
	switch s {
	case StatusInProcess:
		return display.ToneYellow
	case StatusNeedToStart:
		return display.ToneBlue
	case StatusComplete:
		return display.ToneGreen
	case StatusBlocked:
		return display.ToneRed
	case StatusNone:
		return display.ToneNone
	default:
		return display.ToneNone
	}
}

// StatusLabels returns the labels of Statuses.
func StatusLabels() []string {
	out := make([]string, len(Statuses))
	for i, s := range Statuses {
		out[i] = s.String()
	}
	return out
}
