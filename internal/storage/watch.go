package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watcher waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports changes to the database files in a data directory.
// Bursts of writes (database, WAL) collapse into a single notification.
type Watcher struct {
	dir      string
	debounce time.Duration
	watcher  *fsnotify.Watcher
}

// NewWatcher starts watching dbDir. The watch is registered before
// NewWatcher returns, so writes made afterwards are observed.
func NewWatcher(dbDir string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(dbDir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %s: %w", dbDir, err)
	}
	return &Watcher{dir: dbDir, debounce: debounce, watcher: fw}, nil
}

// Run calls onChange once per settled burst of changes until ctx is done
// or the watcher is closed. It returns ctx.Err() on cancellation.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	var last time.Time
	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) != 0 && isDBFile(event.Name) {
				last = time.Now()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		case <-ticker.C:
			if !last.IsZero() && time.Since(last) >= w.debounce {
				last = time.Time{}
				onChange()
			}
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// isDBFile reports whether name is the database or its WAL. The shared
// memory file changes on reads and is ignored.
func isDBFile(name string) bool {
	base := filepath.Base(name)
	return base == DBFileName || strings.HasPrefix(base, DBFileName+"-wal")
}
