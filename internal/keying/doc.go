// Package keying produces and validates room identifiers, wallet addresses
// and the storage keys derived from them.
//
// A room id is one chat-type marker ('p' for PRIVATE, 'g' for GROUP)
// followed by 32 characters of [0-9a-z]. A storage key is
// "<wallet>|<roomId>"; the separator can occur in neither part, so distinct
// (wallet, roomId) pairs never produce the same key.
package keying
