package types

import "strings"

// WalletAddress is a wallet address in normalized form (trimmed, lowercased).
//
// Obtain one via NormalizeAddress or ParseAddress so that two spellings of the
// same address always resolve to the same roster entry.
type WalletAddress string

// NormalizeAddress trims surrounding whitespace and lowercases s.
func NormalizeAddress(s string) WalletAddress {
	return WalletAddress(strings.ToLower(strings.TrimSpace(s)))
}

// Normalize re-applies normalization; it is a no-op for values built with
// NormalizeAddress.
func (a WalletAddress) Normalize() WalletAddress { return NormalizeAddress(string(a)) }

// String returns the string form of the address.
func (a WalletAddress) String() string { return string(a) }

// RoomID names a chat room independent of any member.
type RoomID string

// String returns the string form of the room identifier.
func (id RoomID) String() string { return string(id) }

// StorageKey is the deterministic address of one chat-room record.
type StorageKey string

// String returns the string form of the key.
func (k StorageKey) String() string { return string(k) }
