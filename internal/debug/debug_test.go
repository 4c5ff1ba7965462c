package debug

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestWithDebug(t *testing.T) {
	ctx := context.Background()

	ctx = WithDebug(ctx, true)
	if !IsDebug(ctx) {
		t.Error("Expected IsDebug to return true")
	}

	ctx = WithDebug(ctx, false)
	if IsDebug(ctx) {
		t.Error("Expected IsDebug to return false")
	}
}

func TestIsDebug_NoValue(t *testing.T) {
	ctx := context.Background()
	if IsDebug(ctx) {
		t.Error("Expected IsDebug to return false for context without debug value")
	}
}

func stubClock(t *testing.T, step time.Duration) {
	t.Helper()
	orig := now
	current := time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC)
	now = func() time.Time {
		current = current.Add(step)
		return current
	}
	t.Cleanup(func() { now = orig })
}

func TestSpan_Disabled(t *testing.T) {
	var buf bytes.Buffer
	done := Span(context.Background(), &buf, "build", "rows", 21)
	done(nil)
	if buf.Len() != 0 {
		t.Errorf("expected no output when debug is off, got %q", buf.String())
	}
}

func TestSpan_Success(t *testing.T) {
	stubClock(t, 5*time.Millisecond)

	var buf bytes.Buffer
	ctx := WithDebug(context.Background(), true)
	done := Span(ctx, &buf, "build", "columns", 10, "rows", 21)
	done(nil)

	want := "--> build columns=10 rows=21\n<-- build ok (5ms)\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestSpan_Error(t *testing.T) {
	stubClock(t, time.Millisecond)

	var buf bytes.Buffer
	ctx := WithDebug(context.Background(), true)
	done := Span(ctx, &buf, "load", "path", "jobs file.yaml")
	done(errors.New("no such file"))

	out := buf.String()
	if !strings.Contains(out, `--> load path="jobs file.yaml"`) {
		t.Errorf("missing quoted attribute: %q", out)
	}
	if !strings.Contains(out, "<-- load ERROR: no such file (1ms)") {
		t.Errorf("missing error line: %q", out)
	}
}

func TestFormatAttrs(t *testing.T) {
	long := strings.Repeat("x", maxValueLen+5)
	got := formatAttrs([]any{"q", long, "dangling"})
	if !strings.Contains(got, "... [truncated]") {
		t.Errorf("long value not truncated: %q", got)
	}
	if !strings.HasSuffix(got, " dangling=<missing>") {
		t.Errorf("dangling key = %q", got)
	}
	if formatAttrs(nil) != "" {
		t.Error("no attrs should format as empty")
	}
}
