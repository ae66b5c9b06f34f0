package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns the SHA-256 hex digest of b.
//
// Stores use it to turn an arbitrary storage key into a fixed-width,
// filesystem-safe name.
func Fingerprint(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
