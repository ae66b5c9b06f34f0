package interfaces

import (
	"context"

	domaintypes "chatvault/internal/domain/types"
)

// ChatRoomStorage is the contract the chat client consumes.
type ChatRoomStorage interface {
	RecordStore

	KeyByItem(item domaintypes.ChatRoomEntityItem) (domaintypes.StorageKey, error)
	KeyByWalletAndRoomID(wallet string, roomID domaintypes.RoomID) (domaintypes.StorageKey, error)
	IsValidKey(key domaintypes.StorageKey) bool

	PutMember(ctx context.Context, key domaintypes.StorageKey, member domaintypes.ChatRoomMember) (bool, error)
	GetMember(ctx context.Context, key domaintypes.StorageKey, wallet string) (domaintypes.ChatRoomMember, bool, error)
	GetMembers(ctx context.Context, key domaintypes.StorageKey) (domaintypes.ChatRoomMembers, bool, error)
	DeleteMember(ctx context.Context, key domaintypes.StorageKey, wallet string) (bool, error)

	EncryptPassword(password, pinCode string) (string, error)
	DecryptPassword(ciphertext, pinCode string) (string, error)
}
