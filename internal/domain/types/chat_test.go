package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatvault/internal/domain/types"
)

const (
	carol = "0xcccccccccccccccccccccccccccccccccccccccc"
	dave  = "0xdddddddddddddddddddddddddddddddddddddddd"
)

func TestNormalized_FillsWalletFromKey(t *testing.T) {
	it := types.ChatRoomEntityItem{
		Wallet: " 0xCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCC ",
		Members: types.ChatRoomMembers{
			carol: {MemberType: types.MemberTypeOwner, UserName: "carol"},
			dave:  {MemberType: types.MemberTypeMember, Wallet: carol, UserName: "dave"},
		},
	}

	got := it.Normalized()

	assert.Equal(t, types.WalletAddress(carol), got.Wallet)
	require.Len(t, got.Members, 2)
	assert.Equal(t, types.WalletAddress(carol), got.Members[carol].Wallet)
	assert.Equal(t, "carol", got.Members[carol].UserName)
	assert.Equal(t, types.WalletAddress(dave), got.Members[dave].Wallet, "key wins over a mismatched Wallet")
	assert.Equal(t, "dave", got.Members[dave].UserName)
}

func TestNormalized_EmptyKeyUsesWallet(t *testing.T) {
	it := types.ChatRoomEntityItem{
		Members: types.ChatRoomMembers{
			"": {Wallet: " 0xDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDDD", UserName: "dave"},
		},
	}

	got := it.Normalized()

	require.Contains(t, got.Members, types.WalletAddress(dave))
	assert.Equal(t, types.WalletAddress(dave), got.Members[dave].Wallet)
}

func TestNormalized_CollisionsAreDeterministic(t *testing.T) {
	upper := types.WalletAddress("0xCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCC")

	newer := types.ChatRoomEntityItem{Members: types.ChatRoomMembers{
		carol: {UserName: "old", Timestamp: 1},
		upper: {UserName: "new", Timestamp: 2},
	}}
	tie := types.ChatRoomEntityItem{Members: types.ChatRoomMembers{
		carol: {UserName: "lower", Timestamp: 5},
		upper: {UserName: "upper", Timestamp: 5},
	}}

	for i := 0; i < 20; i++ {
		got := newer.Normalized()
		require.Len(t, got.Members, 1)
		assert.Equal(t, "new", got.Members[carol].UserName, "newer timestamp wins")

		got = tie.Normalized()
		require.Len(t, got.Members, 1)
		assert.Equal(t, "upper", got.Members[carol].UserName, "first key in byte order wins a tie")
	}
}

func TestNormalized_NilRoster(t *testing.T) {
	assert.Nil(t, types.ChatRoomEntityItem{}.Normalized().Members)
}
