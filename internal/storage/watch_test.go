package storage

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWatcher(t *testing.T) {
	t.Parallel()

	t.Run("notifies after a write", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s, err := OpenSQLite(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer s.Close()

		w, err := NewWatcher(dir, 20*time.Millisecond)
		if err != nil {
			t.Fatalf("NewWatcher failed: %v", err)
		}
		defer w.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		changed := make(chan struct{}, 1)
		done := make(chan error, 1)
		go func() {
			done <- w.Run(ctx, func() {
				select {
				case changed <- struct{}{}:
				default:
				}
			})
		}()

		if err := s.Set(ctx, "links-scanned", "1"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		select {
		case <-changed:
		case <-ctx.Done():
			t.Fatal("no change notification before timeout")
		}
		cancel()
		if err := <-done; !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		if _, err := NewWatcher("/nonexistent/scameye-watch", 0); err == nil {
			t.Error("expected error for missing directory")
		}
	})

	t.Run("database file names", func(t *testing.T) {
		t.Parallel()

		tests := map[string]bool{
			"/data/scameye.db":     true,
			"/data/scameye.db-wal": true,
			"/data/scameye.db-shm": false,
			"/data/other.db":       false,
		}
		for name, want := range tests {
			if got := isDBFile(name); got != want {
				t.Errorf("isDBFile(%q) = %v, want %v", name, got, want)
			}
		}
	})
}
