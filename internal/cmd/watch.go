package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchSettle is how long a file must stay quiet before a change is reported.
const watchSettle = 150 * time.Millisecond

// fileWatcher reports writes to one dataset file. It watches the parent
// directory so editors that save by replacing the file are still seen.
type fileWatcher struct {
	w      *fsnotify.Watcher
	target string
}

func newFileWatcher(path string) (*fileWatcher, error) {
	target, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to start file watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}
	return &fileWatcher{w: w, target: target}, nil
}

func (fw *fileWatcher) Close() error {
	return fw.w.Close()
}

// Run calls onChange once per burst of writes to the file until ctx is done.
func (fw *fileWatcher) Run(ctx context.Context, settle time.Duration, onChange func()) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != fw.target || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(settle)
			} else {
				timer.Reset(settle)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			onChange()
		case err, ok := <-fw.w.Errors:
			if !ok {
				return nil
			}
			slog.Debug("file watcher error", "path", fw.target, "error", err)
		}
	}
}
