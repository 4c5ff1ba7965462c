package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func startWatcher(t *testing.T, path string) (<-chan struct{}, context.CancelFunc, <-chan error) {
	t.Helper()
	fw, err := newFileWatcher(path)
	if err != nil {
		t.Fatalf("newFileWatcher: %v", err)
	}
	t.Cleanup(func() { _ = fw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	changes := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- fw.Run(ctx, 20*time.Millisecond, func() { changes <- struct{}{} })
	}()
	return changes, cancel, done
}

func TestFileWatcherReportsWrites(t *testing.T) {
	path := writeFile(t, "jobs.yaml", "- job: a\n")
	changes, cancel, done := startWatcher(t, path)

	if err := os.WriteFile(path, []byte("- job: b\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestFileWatcherIgnoresSiblings(t *testing.T) {
	path := writeFile(t, "jobs.yaml", "- job: a\n")
	changes, _, _ := startWatcher(t, path)

	sibling := filepath.Join(filepath.Dir(path), "other.yaml")
	if err := os.WriteFile(sibling, []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case <-changes:
		t.Fatal("sibling write reported as a change")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestShowWatchNeedsFile(t *testing.T) {
	for _, args := range [][]string{{"show", "--watch"}, {"show", "--watch", "--file", "-"}} {
		res := runApp(t, strings.NewReader(""), args...)
		if res.err == nil || ExitCode(res.err) != ExitUser {
			t.Fatalf("%v: err = %v, want user error", args, res.err)
		}
		if !strings.Contains(res.err.Error(), "--watch needs a dataset file") {
			t.Errorf("%v: err = %v", args, res.err)
		}
	}
}
