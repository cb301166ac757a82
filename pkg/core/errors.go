package core

import "errors"

// Common errors.
var (
	// ErrKeyNotFound is returned by a Store when nothing is stored under a key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrReadOnly is returned by a Store opened in read-only mode on writes.
	ErrReadOnly = errors.New("store is in read-only mode")

	// ErrInvalidKey is returned when a key cannot be mapped to the backend.
	ErrInvalidKey = errors.New("invalid key")

	// ErrPersistence marks a failed read or write of a stored snapshot.
	// The in-memory state stays authoritative when it is returned.
	ErrPersistence = errors.New("persistence failure")

	// ErrMalformed marks a stored snapshot that could not be decoded.
	ErrMalformed = errors.New("malformed persisted data")
)
