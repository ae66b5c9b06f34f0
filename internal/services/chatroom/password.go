package chatroom

import (
	"context"
	"crypto/subtle"
	"fmt"

	"chatvault/internal/crypto"
	"chatvault/internal/domain"
	"chatvault/internal/util/memzero"
)

// EncryptPassword seals password under the master passphrase and pinCode.
// The output differs on every call, even for equal inputs.
func (s *Service) EncryptPassword(password, pinCode string) (string, error) {
	secret := crypto.SecretMaterial(s.passphrase, pinCode)
	defer memzero.Zero(secret)

	return crypto.Seal(secret, []byte(password), s.kdf)
}

// DecryptPassword reverses EncryptPassword. A wrong pin or passphrase, or a
// modified ciphertext, yields domain.ErrDecryption.
func (s *Service) DecryptPassword(ciphertext, pinCode string) (string, error) {
	secret := crypto.SecretMaterial(s.passphrase, pinCode)
	defer memzero.Zero(secret)

	pt, err := crypto.Open(secret, ciphertext)
	if err != nil {
		return "", err
	}
	return string(pt), nil
}

// RevealPassword loads the record at key and decrypts its room password.
func (s *Service) RevealPassword(ctx context.Context, key domain.StorageKey, pinCode string) (string, error) {
	item, ok, err := s.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("chat room %s: %w", key, domain.ErrNotFound)
	}
	return s.DecryptPassword(item.Password, pinCode)
}

// VerifyPassword reports whether password matches the room password stored
// at key. The comparison runs in constant time.
func (s *Service) VerifyPassword(ctx context.Context, key domain.StorageKey, password, pinCode string) (bool, error) {
	stored, err := s.RevealPassword(ctx, key, pinCode)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1, nil
}
