package domain

import (
	interfaces "chatvault/internal/domain/interfaces"
	types "chatvault/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	WalletAddress      = types.WalletAddress
	RoomID             = types.RoomID
	StorageKey         = types.StorageKey
	ChatType           = types.ChatType
	ChatRoomMemberType = types.ChatRoomMemberType
	ChatRoomMember     = types.ChatRoomMember
	ChatRoomMembers    = types.ChatRoomMembers
	ChatRoomEntityItem = types.ChatRoomEntityItem
	MemberProfile      = types.MemberProfile
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	RecordBackend   = interfaces.RecordBackend
	RecordStore     = interfaces.RecordStore
	ChatRoomStorage = interfaces.ChatRoomStorage
)

const (
	ChatTypePrivate  = types.ChatTypePrivate
	ChatTypeGroup    = types.ChatTypeGroup
	MemberTypeOwner  = types.MemberTypeOwner
	MemberTypeMember = types.MemberTypeMember
)

// NormalizeAddress trims and lowercases a wallet address.
func NormalizeAddress(s string) WalletAddress { return types.NormalizeAddress(s) }

// NewChatRoom builds a record whose roster holds exactly the owner.
var NewChatRoom = types.NewChatRoom
