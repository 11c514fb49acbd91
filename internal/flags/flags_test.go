package flags

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("missing file reads as disabled", func(t *testing.T) {
		t.Parallel()

		s := NewFileStore(filepath.Join(t.TempDir(), "nope", "flags.yaml"))
		f, err := s.Get(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f != (Flags{}) {
			t.Errorf("expected zero flags, got %+v", f)
		}
	})

	t.Run("set then get", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "cfg", "flags.yaml")
		s := NewFileStore(path)
		want := Flags{ExtensionEnabled: true, ShowOnlyRiskyOnes: true}
		if err := s.Set(ctx, want); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		got, err := s.Get(ctx)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != want {
			t.Errorf("expected %+v, got %+v", want, got)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat failed: %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("expected 0600 permissions, got %v", info.Mode().Perm())
		}
	})

	t.Run("reads external edits without caching", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "flags.yaml")
		s := NewFileStore(path)

		if err := os.WriteFile(path, []byte("extensionEnabled: true\n"), 0600); err != nil {
			t.Fatal(err)
		}
		if f, _ := s.Get(ctx); !f.ExtensionEnabled || f.ShowOnlyRiskyOnes {
			t.Errorf("unexpected flags %+v", f)
		}

		if err := os.WriteFile(path, []byte("extensionEnabled: false\nshowOnlyRiskyOnes: true\n"), 0600); err != nil {
			t.Fatal(err)
		}
		if f, _ := s.Get(ctx); f.ExtensionEnabled || !f.ShowOnlyRiskyOnes {
			t.Errorf("expected edited flags, got %+v", f)
		}
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "flags.yaml")
		if err := os.WriteFile(path, []byte("extensionEnabled: [\n"), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := NewFileStore(path).Get(ctx); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := NewFileStore(filepath.Join(t.TempDir(), "f.yaml")).Get(cctx); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewMemoryStore(Flags{ExtensionEnabled: true})

	if f, _ := m.Get(ctx); !f.ExtensionEnabled {
		t.Error("expected enabled")
	}
	m.Set(Flags{})
	if f, _ := m.Get(ctx); f.ExtensionEnabled {
		t.Error("expected disabled after Set")
	}

	boom := errors.New("storage unavailable")
	m.Fail(boom)
	if _, err := m.Get(ctx); !errors.Is(err, boom) {
		t.Errorf("expected injected error, got %v", err)
	}
	if m.Reads() != 3 {
		t.Errorf("expected 3 reads, got %d", m.Reads())
	}
}
