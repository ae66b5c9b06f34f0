package crypto

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"chatvault/internal/domain"
	"chatvault/internal/util/memzero"
)

const (
	// The current supported version of the sealed secret format.
	envelopeFormatVersion = 1

	saltBytes = 16

	// Upper bounds on the scrypt cost accepted from a stored blob.
	maxScryptN      = 1 << 20
	maxScryptR      = 32
	maxScryptP      = 16
	maxScryptMemory = 1 << 30 // bytes; scrypt needs 128*N*r
)

// KDFParams are the scrypt tunables used when sealing.
type KDFParams struct {
	N int
	R int
	P int
}

// DefaultKDFParams returns the interactive-login scrypt cost.
func DefaultKDFParams() KDFParams { return KDFParams{N: 1 << 15, R: 8, P: 1} }

func (p KDFParams) valid() bool {
	if p.N <= 1 || p.N&(p.N-1) != 0 || p.N > maxScryptN {
		return false
	}
	if p.R <= 0 || p.R > maxScryptR || p.P <= 0 || p.P > maxScryptP {
		return false
	}
	return 128*int64(p.N)*int64(p.R) <= maxScryptMemory
}

// Validate reports whether p is usable for sealing. N must be a power of two
// no larger than 1<<20, r at most 32, p at most 16, and 128*N*r at most 1 GiB.
func (p KDFParams) Validate() error {
	if !p.valid() {
		return fmt.Errorf("%w: scrypt params N=%d r=%d p=%d", domain.ErrInvalidArgument, p.N, p.R, p.P)
	}
	return nil
}

// blob is the JSON structure holding the ciphertext and KDF parameters.
type blob struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Nonce  []byte `json:"nonce"`
	Cipher []byte `json:"cipher"`
}

// SecretMaterial mixes a master passphrase with a pin code.
//
// The passphrase length is prefixed so ("ab", "") and ("a", "b") never yield
// the same material. Callers should wipe the result after use.
func SecretMaterial(passphrase, pin string) []byte {
	out := make([]byte, 8, 8+len(passphrase)+len(pin))
	binary.BigEndian.PutUint64(out, uint64(len(passphrase)))
	out = append(out, passphrase...)
	return append(out, pin...)
}

// Seal derives a key from secret with a fresh salt and encrypts plaintext.
// Each call uses a fresh salt and nonce, so equal inputs give different outputs.
func Seal(secret, plaintext []byte, params KDFParams) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key, err := scrypt.Key(secret, salt, params.N, params.R, params.P, chacha20poly1305.KeySize)
	if err != nil {
		return "", err
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	ct := aead.Seal(nil, nonce, plaintext, salt)

	raw, err := json.Marshal(blob{
		V:      envelopeFormatVersion,
		Salt:   salt,
		N:      params.N,
		R:      params.R,
		P:      params.P,
		Nonce:  nonce,
		Cipher: ct,
	})
	if err != nil {
		return "", err
	}
	return B64(raw), nil
}

// Open reverses Seal. Any failure to authenticate, including a malformed
// input, is reported as domain.ErrDecryption.
func Open(secret []byte, sealed string) ([]byte, error) {
	raw, err := FromB64(sealed)
	if err != nil {
		return nil, fmt.Errorf("%w: bad encoding", domain.ErrDecryption)
	}
	var bl blob
	if err := json.Unmarshal(raw, &bl); err != nil {
		return nil, fmt.Errorf("%w: bad envelope", domain.ErrDecryption)
	}
	if bl.V != envelopeFormatVersion {
		return nil, fmt.Errorf("%w: unsupported envelope version %d", domain.ErrDecryption, bl.V)
	}
	params := KDFParams{N: bl.N, R: bl.R, P: bl.P}
	if !params.valid() || len(bl.Salt) != saltBytes || len(bl.Nonce) != chacha20poly1305.NonceSize {
		return nil, fmt.Errorf("%w: bad envelope parameters", domain.ErrDecryption)
	}

	key, err := scrypt.Key(secret, bl.Salt, bl.N, bl.R, bl.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecryption, err)
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	pt, err := aead.Open(nil, bl.Nonce, bl.Cipher, bl.Salt)
	if err != nil {
		return nil, domain.ErrDecryption
	}
	return pt, nil
}
