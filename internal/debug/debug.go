// Package debug carries the --debug flag through the context and traces
// the stages of a command (load, build, render) to stderr.
package debug

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

type contextKey struct{}

// WithDebug injects the debug flag into the context
func WithDebug(ctx context.Context, debug bool) context.Context {
	return context.WithValue(ctx, contextKey{}, debug)
}

// IsDebug returns true if debug mode is enabled in the context
func IsDebug(ctx context.Context) bool {
	if v, ok := ctx.Value(contextKey{}).(bool); ok {
		return v
	}
	return false
}

// maxValueLen bounds a traced attribute value.
const maxValueLen = 80

// now is replaced in tests.
var now = time.Now

// Span writes "--> stage k=v ..." to w and returns a function that writes
// the matching "<-- stage" line with the elapsed time and the stage's error.
// When debug is disabled in ctx nothing is written. A nil w means stderr.
func Span(ctx context.Context, w io.Writer, stage string, attrs ...any) func(err error) {
	if !IsDebug(ctx) {
		return func(error) {}
	}
	if w == nil {
		w = os.Stderr
	}

	start := now()
	_, _ = fmt.Fprintf(w, "--> %s%s\n", stage, formatAttrs(attrs))

	return func(err error) {
		duration := now().Sub(start)
		if err != nil {
			_, _ = fmt.Fprintf(w, "<-- %s ERROR: %v (%s)\n", stage, err, duration)
			return
		}
		_, _ = fmt.Fprintf(w, "<-- %s ok (%s)\n", stage, duration)
	}
}

// formatAttrs renders alternating key/value pairs. A trailing key without a
// value is printed as key=<missing>.
func formatAttrs(attrs []any) string {
	if len(attrs) == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < len(attrs); i += 2 {
		key := fmt.Sprint(attrs[i])
		val := "<missing>"
		if i+1 < len(attrs) {
			val = fmt.Sprint(attrs[i+1])
		}
		if len(val) > maxValueLen {
			val = val[:maxValueLen] + "... [truncated]"
		}
		if strings.ContainsAny(val, " \t") {
			val = fmt.Sprintf("%q", val)
		}
		b.WriteString(" ")
		b.WriteString(key)
		b.WriteString("=")
		b.WriteString(val)
	}
	return b.String()
}
