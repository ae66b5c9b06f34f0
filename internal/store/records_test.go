package store_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatvault/internal/domain"
	"chatvault/internal/keying"
	"chatvault/internal/store"
)

const (
	alice = "0x1111111111111111111111111111111111111111"
	bob   = "0x2222222222222222222222222222222222222222"
)

func testKey(t *testing.T, chatType domain.ChatType) domain.StorageKey {
	t.Helper()
	roomID, err := keying.GenerateRandomRoomID(chatType)
	require.NoError(t, err)
	key, err := keying.KeyByWalletAndRoomID(alice, roomID)
	require.NoError(t, err)
	return key
}

func testRoom(t *testing.T, chatType domain.ChatType) (domain.StorageKey, domain.ChatRoomEntityItem) {
	t.Helper()
	roomID, err := keying.GenerateRandomRoomID(chatType)
	require.NoError(t, err)

	item := domain.NewChatRoom(
		domain.NormalizeAddress(alice), chatType, roomID,
		"lounge", "weekly sync", "sealed-password",
		domain.MemberProfile{UserName: "alice", UserAvatar: "a.png", PublicKey: "pk-a"},
		1_700_000_000_000,
	)
	key, err := keying.KeyByItem(item)
	require.NoError(t, err)
	return key, item
}

func TestRecordStore_PutGet_RoundTrip(t *testing.T) {
	ctx := context.Background()
	rs := store.NewRecordStore(store.NewMemoryBackend())
	key, item := testRoom(t, domain.ChatTypeGroup)
	item.Members[domain.NormalizeAddress(bob)] = domain.ChatRoomMember{
		MemberType: domain.MemberTypeMember,
		Wallet:     domain.NormalizeAddress(bob),
		UserName:   "bob",
		Timestamp:  1_700_000_000_500,
	}

	require.NoError(t, rs.Put(ctx, key, item))

	got, ok, err := rs.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, item, got)
}

func TestRecordStore_Put_NormalizesWallets(t *testing.T) {
	ctx := context.Background()
	rs := store.NewRecordStore(store.NewMemoryBackend())
	key, item := testRoom(t, domain.ChatTypePrivate)

	shouting := domain.WalletAddress(" " + strings.ToUpper(bob) + " ")
	item.Wallet = domain.WalletAddress(" " + strings.ToUpper(alice) + " ")
	item.Members[shouting] = domain.ChatRoomMember{MemberType: domain.MemberTypeMember, Wallet: shouting}

	require.NoError(t, rs.Put(ctx, key, item))

	got, ok, err := rs.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.NormalizeAddress(alice), got.Wallet)
	m, ok := got.Members[domain.NormalizeAddress(bob)]
	require.True(t, ok, "member must be re-keyed by normalized address")
	assert.Equal(t, domain.NormalizeAddress(bob), m.Wallet)
}

func TestRecordStore_Put_InvalidKey(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemoryBackend()
	rs := store.NewRecordStore(backend)
	_, item := testRoom(t, domain.ChatTypeGroup)

	for _, key := range []domain.StorageKey{"", "no-separator", alice + "|short", domain.StorageKey("bob|" + string(item.RoomID))} {
		err := rs.Put(ctx, key, item)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument, "key %q", key)
	}
	assert.Zero(t, backend.Len(), "rejected puts must not touch the backend")
}

func TestRecordStore_Get_MalformedKeyIsAbsent(t *testing.T) {
	rs := store.NewRecordStore(store.NewMemoryBackend())

	_, ok, err := rs.Get(context.Background(), "garbage")
	require.NoError(t, err)
	assert.False(t, ok)

	existed, err := rs.Delete(context.Background(), "garbage")
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestRecordStore_CanonicalKey(t *testing.T) {
	ctx := context.Background()
	rs := store.NewRecordStore(store.NewMemoryBackend())
	key, item := testRoom(t, domain.ChatTypeGroup)

	require.NoError(t, rs.Put(ctx, domain.StorageKey(" "+strings.ToUpper(string(key))+" "), item))

	_, ok, err := rs.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok, "differently cased key must address the same record")
}

func TestRecordStore_Delete(t *testing.T) {
	ctx := context.Background()
	rs := store.NewRecordStore(store.NewMemoryBackend())
	key, item := testRoom(t, domain.ChatTypePrivate)
	require.NoError(t, rs.Put(ctx, key, item))

	existed, err := rs.Delete(ctx, key)
	require.NoError(t, err)
	assert.True(t, existed)

	_, ok, err := rs.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	existed, err = rs.Delete(ctx, key)
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestRecordStore_FileBackend_RoundTrip(t *testing.T) {
	ctx := context.Background()
	backend, err := store.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	rs := store.NewRecordStore(backend)
	key, item := testRoom(t, domain.ChatTypeGroup)

	require.NoError(t, rs.Put(ctx, key, item))
	got, ok, err := rs.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, item, got)
}

var errBoom = errors.New("disk on fire")

type brokenBackend struct{ data []byte }

func (b brokenBackend) Load(context.Context, domain.StorageKey) ([]byte, bool, error) {
	if b.data != nil {
		return b.data, true, nil
	}
	return nil, false, errBoom
}
func (brokenBackend) Save(context.Context, domain.StorageKey, []byte) error { return errBoom }
func (brokenBackend) Remove(context.Context, domain.StorageKey) (bool, error) {
	return false, errBoom
}
func (brokenBackend) Close() error { return nil }

func TestRecordStore_BackendFaults(t *testing.T) {
	ctx := context.Background()
	rs := store.NewRecordStore(brokenBackend{})
	key, item := testRoom(t, domain.ChatTypeGroup)

	err := rs.Put(ctx, key, item)
	assert.ErrorIs(t, err, domain.ErrStorageBackend)
	assert.ErrorIs(t, err, errBoom)

	_, _, err = rs.Get(ctx, key)
	assert.ErrorIs(t, err, domain.ErrStorageBackend)

	_, err = rs.Delete(ctx, key)
	assert.ErrorIs(t, err, domain.ErrStorageBackend)
}

func TestRecordStore_CorruptedRecord(t *testing.T) {
	rs := store.NewRecordStore(brokenBackend{data: []byte("{not json")})
	key, _ := testRoom(t, domain.ChatTypeGroup)

	_, ok, err := rs.Get(context.Background(), key)
	assert.ErrorIs(t, err, domain.ErrStorageBackend)
	assert.False(t, ok)
}
