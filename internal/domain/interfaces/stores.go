package interfaces

import (
	"context"

	domaintypes "chatvault/internal/domain/types"
)

// RecordBackend is the durable key to bytes medium behind the record store.
//
// Implementations only move bytes; validation and serialisation live in the
// record store. Load reports absence with ok=false and a nil error.
type RecordBackend interface {
	Load(ctx context.Context, key domaintypes.StorageKey) (data []byte, ok bool, err error)
	Save(ctx context.Context, key domaintypes.StorageKey, data []byte) error
	Remove(ctx context.Context, key domaintypes.StorageKey) (existed bool, err error)
	Close() error
}

// RecordStore reads and writes whole chat-room records.
type RecordStore interface {
	Put(ctx context.Context, key domaintypes.StorageKey, item domaintypes.ChatRoomEntityItem) error
	Get(ctx context.Context, key domaintypes.StorageKey) (domaintypes.ChatRoomEntityItem, bool, error)
	Delete(ctx context.Context, key domaintypes.StorageKey) (bool, error)
}
