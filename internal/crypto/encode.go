package crypto

import "encoding/base64"

// B64 returns unpadded URL-safe base64, so sealed values stay single-token.
func B64(b []byte) string { return base64.RawURLEncoding.EncodeToString(b) }

// FromB64 decodes a value produced by B64.
func FromB64(s string) ([]byte, error) { return base64.RawURLEncoding.DecodeString(s) }
