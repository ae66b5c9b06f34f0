package keying

import (
	"fmt"
	"regexp"
	"strings"

	"chatvault/internal/crypto"
	"chatvault/internal/domain"
)

// KeySeparator joins the wallet and room id inside a storage key.
const KeySeparator = "|"

var addressPattern = regexp.MustCompile(`^0x[0-9a-f]{40}$`)

// ParseAddress normalizes s and checks it is a hex wallet address.
func ParseAddress(s string) (domain.WalletAddress, error) {
	addr := domain.NormalizeAddress(s)
	if !addressPattern.MatchString(string(addr)) {
		return "", fmt.Errorf("%w: malformed wallet address %q", domain.ErrInvalidArgument, s)
	}
	return addr, nil
}

// KeyByWalletAndRoomID derives the storage key for (wallet, roomID).
func KeyByWalletAndRoomID(wallet string, roomID domain.RoomID) (domain.StorageKey, error) {
	addr, err := ParseAddress(wallet)
	if err != nil {
		return "", err
	}
	if err := IsValidRoomID(roomID); err != nil {
		return "", err
	}
	return domain.StorageKey(addr.String() + KeySeparator + roomID.String()), nil
}

// KeyByItem derives the storage key from the item's owner and room id.
func KeyByItem(item domain.ChatRoomEntityItem) (domain.StorageKey, error) {
	return KeyByWalletAndRoomID(item.Wallet.String(), item.RoomID)
}

// SplitKey is the inverse of KeyByWalletAndRoomID.
func SplitKey(key domain.StorageKey) (domain.WalletAddress, domain.RoomID, error) {
	s := string(key)
	i := strings.LastIndex(s, KeySeparator)
	if i < 0 {
		return "", "", fmt.Errorf("%w: storage key %q has no separator", domain.ErrInvalidArgument, s)
	}
	wallet, roomID := s[:i], domain.RoomID(s[i+len(KeySeparator):])
	if !addressPattern.MatchString(wallet) {
		return "", "", fmt.Errorf("%w: storage key %q has malformed wallet", domain.ErrInvalidArgument, s)
	}
	if err := IsValidRoomID(roomID); err != nil {
		return "", "", err
	}
	return domain.WalletAddress(wallet), roomID, nil
}

// IsValidKey checks the key grammar only; it never consults storage.
//
// The key is canonicalized first, so case and surrounding whitespace are
// accepted exactly as every store operation accepts them.
func IsValidKey(key domain.StorageKey) bool {
	_, _, err := SplitKey(CanonicalKey(key))
	return err == nil
}

// CanonicalKey returns the form under which key is stored.
func CanonicalKey(key domain.StorageKey) domain.StorageKey {
	return domain.StorageKey(strings.ToLower(strings.TrimSpace(string(key))))
}

// GenerateRandomEncryptionKey returns a 256-bit random secret, hex encoded,
// suitable as a group room's shared password.
func GenerateRandomEncryptionKey() (string, error) {
	return crypto.RandomHex(32)
}
