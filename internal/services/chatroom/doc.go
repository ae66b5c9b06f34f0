// Package chatroom is the storage façade consumed by the chat client.
//
// It combines key derivation, the password cipher and the record store, and
// serializes every read-modify-write on a storage key so concurrent roster
// edits on one room never lose updates.
package chatroom
