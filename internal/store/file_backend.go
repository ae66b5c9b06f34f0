package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"chatvault/internal/crypto"
	"chatvault/internal/domain"
)

const roomsDirname = "rooms"

// FileBackend persists one JSON file per chat-room record under
// <home>/rooms. File names are fingerprints of the storage key.
type FileBackend struct {
	dir string
	mu  sync.Mutex
}

// NewFileBackend returns a FileBackend rooted at home, creating the rooms
// directory if needed.
func NewFileBackend(home string) (*FileBackend, error) {
	dir := filepath.Join(home, roomsDirname)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileBackend{dir: dir}, nil
}

func (s *FileBackend) path(key domain.StorageKey) string {
	return filepath.Join(s.dir, crypto.Fingerprint([]byte(key))+".json")
}

// Load reads the record stored at key.
func (s *FileBackend) Load(ctx context.Context, key domain.StorageKey) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return readFile(s.path(key))
}

// Save replaces the record stored at key.
func (s *FileBackend) Save(ctx context.Context, key domain.StorageKey, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeFile(s.path(key), data, 0o600)
}

// Remove deletes the record stored at key.
func (s *FileBackend) Remove(ctx context.Context, key domain.StorageKey) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return removeFile(s.path(key))
}

// Close is a no-op; files are closed after every call.
func (s *FileBackend) Close() error { return nil }

// Compile-time assertion that FileBackend implements domain.RecordBackend.
var _ domain.RecordBackend = (*FileBackend)(nil)
