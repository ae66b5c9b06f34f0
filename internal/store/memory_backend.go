package store

import (
	"context"
	"sync"

	"chatvault/internal/domain"
)

// MemoryBackend keeps records in process memory. State is lost on exit.
type MemoryBackend struct {
	mu      sync.RWMutex
	records map[domain.StorageKey][]byte
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{records: make(map[domain.StorageKey][]byte)}
}

func (s *MemoryBackend) Load(_ context.Context, key domain.StorageKey) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.records[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), b...), true, nil
}

func (s *MemoryBackend) Save(_ context.Context, key domain.StorageKey, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[key] = append([]byte(nil), data...)
	return nil
}

func (s *MemoryBackend) Remove(_ context.Context, key domain.StorageKey) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.records[key]
	delete(s.records, key)
	return ok, nil
}

func (s *MemoryBackend) Close() error { return nil }

// Len returns the number of stored records.
func (s *MemoryBackend) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

var _ domain.RecordBackend = (*MemoryBackend)(nil)
