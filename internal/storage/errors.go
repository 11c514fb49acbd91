package storage

import "errors"

var (
	// ErrStoreClosed is returned by operations on a closed store.
	ErrStoreClosed = errors.New("store is closed")

	// ErrEmptyKey is returned when a key is empty.
	ErrEmptyKey = errors.New("key must not be empty")
)
