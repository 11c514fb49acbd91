package flags

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Flags is the set of feature flags. The zero value disables the overlay.
type Flags struct {
	// ExtensionEnabled turns the hover overlay on.
	ExtensionEnabled bool `yaml:"extensionEnabled" json:"extensionEnabled"`

	// ShowOnlyRiskyOnes hides popups for links scoring 60 or less.
	ShowOnlyRiskyOnes bool `yaml:"showOnlyRiskyOnes" json:"showOnlyRiskyOnes"`
}

// Store reads the current flags.
type Store interface {
	Get(ctx context.Context) (Flags, error)
}

// FileStore keeps flags in a YAML file.
// A missing file reads as the zero Flags.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a FileStore for path. The file need not exist.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file path.
func (s *FileStore) Path() string {
	return s.path
}

// Get reads the file.
func (s *FileStore) Get(ctx context.Context) (Flags, error) {
	if err := ctx.Err(); err != nil {
		return Flags{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Flags{}, nil
		}
		return Flags{}, fmt.Errorf("failed to read flags file: %w", err)
	}

	var f Flags
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Flags{}, fmt.Errorf("failed to parse flags file %s: %w", s.path, err)
	}
	return f, nil
}

// Set writes f to the file, creating parent directories as needed.
func (s *FileStore) Set(ctx context.Context, f Flags) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode flags: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create flags directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write flags file: %w", err)
	}
	return nil
}

// MemoryStore keeps flags in memory.
type MemoryStore struct {
	mu    sync.RWMutex
	flags Flags
	err   error
	reads int
}

// NewMemoryStore creates a MemoryStore holding f.
func NewMemoryStore(f Flags) *MemoryStore {
	return &MemoryStore{flags: f}
}

// Get returns the current flags, or the injected error.
func (m *MemoryStore) Get(context.Context) (Flags, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reads++
	if m.err != nil {
		return Flags{}, m.err
	}
	return m.flags, nil
}

// Set replaces the flags.
func (m *MemoryStore) Set(f Flags) {
	m.mu.Lock()
	m.flags = f
	m.mu.Unlock()
}

// Fail makes Get return err until called again with nil.
func (m *MemoryStore) Fail(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

// Reads returns how many times Get was called.
func (m *MemoryStore) Reads() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reads
}
