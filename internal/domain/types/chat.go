package types

import (
	"maps"
	"slices"
)

// ChatType distinguishes two-party rooms from multi-party rooms.
type ChatType string

const (
	ChatTypePrivate ChatType = "PRIVATE"
	ChatTypeGroup   ChatType = "GROUP"
)

// Valid reports whether t is one of the known chat types.
func (t ChatType) Valid() bool {
	return t == ChatTypePrivate || t == ChatTypeGroup
}

// ChatRoomMemberType tags the role of a member inside a room.
type ChatRoomMemberType string

const (
	MemberTypeOwner  ChatRoomMemberType = "OWNER"
	MemberTypeMember ChatRoomMemberType = "MEMBER"
)

// ChatRoomMember is one roster entry. Wallet is its identity within the room.
type ChatRoomMember struct {
	MemberType ChatRoomMemberType `json:"memberType"`
	Wallet     WalletAddress      `json:"wallet"`
	PublicKey  string             `json:"publicKey,omitempty"`
	UserName   string             `json:"userName"`
	UserAvatar string             `json:"userAvatar"`
	Timestamp  int64              `json:"timestamp"`
}

// ChatRoomMembers maps a normalized wallet address to its roster entry.
type ChatRoomMembers map[WalletAddress]ChatRoomMember

// Clone returns a copy of m that shares no map storage with it.
func (m ChatRoomMembers) Clone() ChatRoomMembers {
	if m == nil {
		return nil
	}
	out := make(ChatRoomMembers, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ChatRoomEntityItem is the persisted chat-room record.
//
// Password always holds ciphertext produced by the password cipher.
type ChatRoomEntityItem struct {
	Wallet    WalletAddress   `json:"wallet"`
	ChatType  ChatType        `json:"chatType"`
	Name      string          `json:"name"`
	RoomID    RoomID          `json:"roomId"`
	Desc      string          `json:"desc,omitempty"`
	Password  string          `json:"password"`
	Timestamp int64           `json:"timestamp"`
	Members   ChatRoomMembers `json:"members"`
}

// Normalized returns a copy of the item with every wallet address normalized.
//
// The roster key is the member's identity: each entry is re-keyed by its
// normalized key and its Wallet set to match. An entry with an empty key
// falls back to its Wallet field. When two spellings normalize to the same
// address the entry with the newer timestamp is kept; on a tie, the first key
// in byte order wins.
func (it ChatRoomEntityItem) Normalized() ChatRoomEntityItem {
	out := it
	out.Wallet = it.Wallet.Normalize()
	if it.Members == nil {
		return out
	}

	out.Members = make(ChatRoomMembers, len(it.Members))
	for _, key := range slices.Sorted(maps.Keys(it.Members)) {
		m := it.Members[key]
		addr := key.Normalize()
		if addr == "" {
			addr = m.Wallet.Normalize()
		}
		m.Wallet = addr
		if prev, ok := out.Members[addr]; ok && prev.Timestamp >= m.Timestamp {
			continue
		}
		out.Members[addr] = m
	}
	return out
}

// MemberProfile carries the display attributes of a member.
type MemberProfile struct {
	PublicKey  string
	UserName   string
	UserAvatar string
}

// NewChatRoom builds a record whose roster holds exactly the owner.
//
// password must already be ciphertext. now is epoch milliseconds.
func NewChatRoom(
	owner WalletAddress,
	chatType ChatType,
	roomID RoomID,
	name, desc, password string,
	profile MemberProfile,
	now int64,
) ChatRoomEntityItem {
	owner = owner.Normalize()
	return ChatRoomEntityItem{
		Wallet:    owner,
		ChatType:  chatType,
		Name:      name,
		RoomID:    roomID,
		Desc:      desc,
		Password:  password,
		Timestamp: now,
		Members: ChatRoomMembers{
			owner: {
				MemberType: MemberTypeOwner,
				Wallet:     owner,
				PublicKey:  profile.PublicKey,
				UserName:   profile.UserName,
				UserAvatar: profile.UserAvatar,
				Timestamp:  now,
			},
		},
	}
}
