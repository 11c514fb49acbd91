package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-process key-value store.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	closed bool

	// failGet and failSet, when set, are returned by every Get or Set.
	failGet error
	failSet error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", false, ErrStoreClosed
	}
	if m.failGet != nil {
		return "", false, m.failGet
	}
	if key == "" {
		return "", false, ErrEmptyKey
	}
	v, ok := m.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	if m.failSet != nil {
		return m.failSet
	}
	if key == "" {
		return ErrEmptyKey
	}
	m.values[key] = value
	return nil
}

// Delete removes key.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	delete(m.values, key)
	return nil
}

// FailReads makes every subsequent Get return err. Pass nil to recover.
func (m *MemoryStore) FailReads(err error) {
	m.mu.Lock()
	m.failGet = err
	m.mu.Unlock()
}

// FailWrites makes every subsequent Set return err. Pass nil to recover.
func (m *MemoryStore) FailWrites(err error) {
	m.mu.Lock()
	m.failSet = err
	m.mu.Unlock()
}

// Close marks the store closed.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
