// Package ui provides terminal color support for grid: status messages on
// stderr and badge/link painting for table cells on stdout.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"

	"github.com/salmonumbrella/grid-cli/internal/display"
)

// ColorMode determines when to use colored output.
type ColorMode int

const (
	// ColorAuto automatically detects whether to use colors based on terminal capabilities.
	ColorAuto ColorMode = iota
	// ColorAlways forces colored output regardless of terminal capabilities.
	ColorAlways
	// ColorNever disables all colored output.
	ColorNever
)

type contextKey string

const uiContextKey contextKey = "ui"

// UI provides methods for formatted terminal output with color support.
// All output goes to stderr by default, leaving stdout for data.
type UI struct {
	out   *termenv.Output
	color ColorMode
}

// ParseColorMode converts a --color value. Empty defaults to auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid --color value %q (expected auto|always|never)", s)
	}
}

func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

// New creates a new UI instance with the specified color mode.
// It respects the NO_COLOR environment variable (POSIX standard).
func New(mode ColorMode) *UI {
	return NewWithWriter(os.Stderr, mode)
}

// NewWithWriter is New writing to w instead of stderr.
func NewWithWriter(w io.Writer, mode ColorMode) *UI {
	if os.Getenv("NO_COLOR") != "" {
		mode = ColorNever
	}
	return &UI{
		out:   termenv.NewOutput(w, termenv.WithProfile(profileFor(w, mode))),
		color: mode,
	}
}

func profileFor(w io.Writer, mode ColorMode) termenv.Profile {
	switch mode {
	case ColorNever:
		return termenv.Ascii
	case ColorAlways:
		// Use at least ANSI256 if forcing colors
		profile := termenv.NewOutput(w).EnvColorProfile()
		if profile == termenv.Ascii {
			profile = termenv.ANSI256
		}
		return profile
	default:
		return termenv.NewOutput(w).EnvColorProfile()
	}
}

// WithUI returns a new context with the UI instance attached.
func WithUI(ctx context.Context, ui *UI) context.Context {
	return context.WithValue(ctx, uiContextKey, ui)
}

// FromContext retrieves the UI instance from the context.
// If no UI is found, it returns a default UI with ColorAuto mode.
func FromContext(ctx context.Context) *UI {
	if ui, ok := ctx.Value(uiContextKey).(*UI); ok {
		return ui
	}
	return New(ColorAuto)
}

// Success prints a success message in green to stderr.
func (u *UI) Success(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintln(u.out, u.out.String("✓ "+msg).Foreground(termenv.ANSIGreen))
}

// Warning prints a warning message in yellow to stderr.
func (u *UI) Warning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintln(u.out, u.out.String("⚠ "+msg).Foreground(termenv.ANSIYellow))
}

// Error prints an error message in red to stderr.
func (u *UI) Error(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintln(u.out, u.out.String("✗ "+msg).Foreground(termenv.ANSIRed))
}

// Info prints an informational message in blue to stderr.
func (u *UI) Info(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintln(u.out, u.out.String("ℹ "+msg).Foreground(termenv.ANSIBlue))
}

// Writer returns the underlying writer for the UI (stderr).
func (u *UI) Writer() io.Writer {
	return u.out
}

// Mode returns the configured color mode.
func (u *UI) Mode() ColorMode {
	return u.color
}

// Painter decorates table cells for a specific writer, normally stdout.
// With the Ascii profile every method returns its input unchanged.
type Painter struct {
	out *termenv.Output
}

// NewPainter returns a Painter for w honoring mode and NO_COLOR.
func NewPainter(w io.Writer, mode ColorMode) *Painter {
	if os.Getenv("NO_COLOR") != "" {
		mode = ColorNever
	}
	return &Painter{out: termenv.NewOutput(w, termenv.WithProfile(profileFor(w, mode)))}
}

// Enabled reports whether the painter emits escape sequences.
func (p *Painter) Enabled() bool {
	return p != nil && p.out.Profile != termenv.Ascii
}

// Badge paints label in the colour of tone.
func (p *Painter) Badge(label string, tone display.Tone) string {
	if !p.Enabled() || label == "" {
		return label
	}
	style := p.out.String(label)
	switch tone {
	case display.ToneYellow:
		style = style.Foreground(termenv.ANSIYellow)
	case display.ToneBlue:
		style = style.Foreground(termenv.ANSIBlue)
	case display.ToneGreen:
		style = style.Foreground(termenv.ANSIGreen)
	case display.ToneRed:
		style = style.Foreground(termenv.ANSIRed)
	case display.ToneNone:
		return label
	default:
		return label
	}
	return style.String()
}

// Link renders an OSC 8 hyperlink labelled label.
func (p *Painter) Link(label, href string) string {
	if !p.Enabled() || href == "" {
		return label
	}
	return p.out.Hyperlink(href, p.out.String(label).Underline().String())
}

// Bold paints s bold.
func (p *Painter) Bold(s string) string {
	if !p.Enabled() || s == "" {
		return s
	}
	return p.out.String(s).Bold().String()
}

// Faint paints s dimmed.
func (p *Painter) Faint(s string) string {
	if !p.Enabled() || s == "" {
		return s
	}
	return p.out.String(s).Faint().String()
}
