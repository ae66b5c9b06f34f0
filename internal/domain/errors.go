package domain

import "errors"

var (
	// ErrInvalidArgument marks a malformed key, room id or wallet address.
	// It is detected before any storage access.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound marks absence of a record or member. Read operations report
	// absence with found=false; the sentinel is for callers that need an error.
	ErrNotFound = errors.New("not found")

	// ErrDecryption is returned when a master passphrase or pin is wrong, or
	// the ciphertext has been modified.
	ErrDecryption = errors.New("wrong passphrase or pin, or corrupted ciphertext")

	// ErrStorageBackend wraps faults of the underlying storage medium.
	ErrStorageBackend = errors.New("storage backend failure")
)
