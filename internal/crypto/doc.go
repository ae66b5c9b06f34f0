// Package crypto exposes the minimal primitives used by chatvault.
//
// Contents
//
//   - Passphrase envelopes: scrypt key derivation and ChaCha20-Poly1305
//     sealing with the salt bound as associated data (Seal, Open)
//   - Mixing of a master passphrase with an optional pin (SecretMaterial)
//   - Random hex secrets (RandomHex)
//   - Fingerprints of storage keys for file naming (Fingerprint)
//
// # Notes
//
// Open reports every authentication failure as domain.ErrDecryption so a
// wrong passphrase is never mistaken for a valid empty plaintext.
package crypto
