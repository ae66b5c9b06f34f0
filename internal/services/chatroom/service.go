package chatroom

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"chatvault/internal/crypto"
	"chatvault/internal/domain"
	"chatvault/internal/keying"
	"chatvault/internal/store"
)

// Service stores chat-room records and rosters and protects room passwords.
//
// The master passphrase is bound at construction and never persisted. All
// mutating calls on one storage key run one at a time; calls on different
// keys proceed independently.
type Service struct {
	records    *store.RecordStore
	passphrase string
	kdf        crypto.KDFParams
	log        *slog.Logger
	now        func() time.Time
	locks      *keyLocks
}

// New returns a Service persisting through backend. masterPassphrase is mixed
// with the per-call pin to seal room passwords; an empty passphrase leaves the
// pin as the only secret.
func New(backend domain.RecordBackend, masterPassphrase string, opts ...Option) (*Service, error) {
	if backend == nil {
		return nil, fmt.Errorf("%w: nil record backend", domain.ErrInvalidArgument)
	}

	s := &Service{
		records:    store.NewRecordStore(backend),
		passphrase: masterPassphrase,
		kdf:        crypto.DefaultKDFParams(),
		log:        slog.Default(),
		now:        time.Now,
		locks:      newKeyLocks(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.kdf.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases the backend.
func (s *Service) Close() error { return s.records.Close() }

// KeyByItem derives the storage key of item.
func (s *Service) KeyByItem(item domain.ChatRoomEntityItem) (domain.StorageKey, error) {
	return keying.KeyByItem(item)
}

// KeyByWalletAndRoomID derives the storage key of (wallet, roomID).
func (s *Service) KeyByWalletAndRoomID(wallet string, roomID domain.RoomID) (domain.StorageKey, error) {
	return keying.KeyByWalletAndRoomID(wallet, roomID)
}

// IsValidKey reports whether key is structurally valid. It does not check
// that a record exists.
func (s *Service) IsValidKey(key domain.StorageKey) bool {
	return keying.IsValidKey(key)
}

// Put stores item at key, replacing any previous record. Concurrent puts on
// one key are last-write-wins.
func (s *Service) Put(ctx context.Context, key domain.StorageKey, item domain.ChatRoomEntityItem) error {
	k := keying.CanonicalKey(key)
	unlock := s.locks.lock(k)
	defer unlock()

	if err := s.records.Put(ctx, k, item); err != nil {
		s.logFault("put", k, err)
		return err
	}
	s.log.Debug("chat room stored", "key", k, "members", len(item.Members))
	return nil
}

// Get returns the record at key, or found=false when absent.
func (s *Service) Get(ctx context.Context, key domain.StorageKey) (domain.ChatRoomEntityItem, bool, error) {
	item, ok, err := s.records.Get(ctx, key)
	if err != nil {
		s.logFault("get", key, err)
	}
	return item, ok, err
}

// Delete removes the record at key and reports whether it existed.
func (s *Service) Delete(ctx context.Context, key domain.StorageKey) (bool, error) {
	k := keying.CanonicalKey(key)
	unlock := s.locks.lock(k)
	defer unlock()

	existed, err := s.records.Delete(ctx, k)
	if err != nil {
		s.logFault("delete", k, err)
		return false, err
	}
	s.log.Debug("chat room deleted", "key", k, "existed", existed)
	return existed, nil
}

// GenerateRandomRoomID returns a fresh room id for chatType.
func (s *Service) GenerateRandomRoomID(chatType domain.ChatType) (domain.RoomID, error) {
	return keying.GenerateRandomRoomID(chatType)
}

// IsValidRoomID returns nil for a well-formed room id and a descriptive
// error otherwise.
func (s *Service) IsValidRoomID(roomID domain.RoomID) error {
	return keying.IsValidRoomID(roomID)
}

// GenerateRandomEncryptionKey returns 32 random bytes, hex encoded.
func (s *Service) GenerateRandomEncryptionKey() (string, error) {
	return keying.GenerateRandomEncryptionKey()
}

func (s *Service) nowMillis() int64 { return s.now().UnixMilli() }

func (s *Service) logFault(op string, key domain.StorageKey, err error) {
	if !errors.Is(err, domain.ErrStorageBackend) {
		return
	}
	s.log.Warn("chat room storage failed", "op", op, "key", key, "err", err)
}

// Compile-time assertion that Service implements domain.ChatRoomStorage.
var _ domain.ChatRoomStorage = (*Service)(nil)
