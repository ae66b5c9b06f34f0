package store

import (
	"context"
	"encoding/json"
	"fmt"

	"chatvault/internal/domain"
	"chatvault/internal/keying"
)

// RecordStore serializes chat-room records as JSON and keeps them in a
// RecordBackend under their canonical storage key.
type RecordStore struct {
	backend domain.RecordBackend
}

// NewRecordStore returns a RecordStore over backend.
func NewRecordStore(backend domain.RecordBackend) *RecordStore {
	return &RecordStore{backend: backend}
}

// Put stores item at key, replacing any previous record.
//
// Wallet addresses inside item are normalized before writing.
func (s *RecordStore) Put(ctx context.Context, key domain.StorageKey, item domain.ChatRoomEntityItem) error {
	k := keying.CanonicalKey(key)
	if !keying.IsValidKey(k) {
		return fmt.Errorf("%w: storage key %q", domain.ErrInvalidArgument, key)
	}

	raw, err := json.Marshal(item.Normalized())
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := s.backend.Save(ctx, k, raw); err != nil {
		return fmt.Errorf("%w: save %s: %w", domain.ErrStorageBackend, k, err)
	}
	return nil
}

// Get returns the record at key. A malformed key can never have been stored,
// so it reports not found.
func (s *RecordStore) Get(ctx context.Context, key domain.StorageKey) (domain.ChatRoomEntityItem, bool, error) {
	var item domain.ChatRoomEntityItem

	k := keying.CanonicalKey(key)
	if !keying.IsValidKey(k) {
		return item, false, nil
	}

	raw, ok, err := s.backend.Load(ctx, k)
	if err != nil {
		return item, false, fmt.Errorf("%w: load %s: %w", domain.ErrStorageBackend, k, err)
	}
	if !ok {
		return item, false, nil
	}
	if err := json.Unmarshal(raw, &item); err != nil {
		return domain.ChatRoomEntityItem{}, false, fmt.Errorf("%w: decode %s: %w", domain.ErrStorageBackend, k, err)
	}
	return item, true, nil
}

// Delete removes the record at key and reports whether it existed.
func (s *RecordStore) Delete(ctx context.Context, key domain.StorageKey) (bool, error) {
	k := keying.CanonicalKey(key)
	if !keying.IsValidKey(k) {
		return false, nil
	}

	existed, err := s.backend.Remove(ctx, k)
	if err != nil {
		return false, fmt.Errorf("%w: remove %s: %w", domain.ErrStorageBackend, k, err)
	}
	return existed, nil
}

// Close releases the backend.
func (s *RecordStore) Close() error { return s.backend.Close() }

var _ domain.RecordStore = (*RecordStore)(nil)
