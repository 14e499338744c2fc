package contracts

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestEventsParseForEveryGroup(t *testing.T) {
	seen := make(map[string]Group)
	for _, group := range Groups {
		events, err := Events(group)
		require.NoError(t, err)
		require.NotEmpty(t, events)
		for name := range events {
			prev, dup := seen[name]
			require.False(t, dup, "%s declared by %s and %s", name, prev, group)
			seen[name] = group
		}
	}
	require.Len(t, seen, 51)
}

func TestParseEventSignatureTopic(t *testing.T) {
	ev, err := ParseEventSignature("Transfer(address indexed from, address indexed to, uint256 indexed tokenId)")
	require.NoError(t, err)
	require.Equal(t, "Transfer", ev.Name)
	require.Equal(t, common.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"), ev.ID)
	require.Len(t, ev.Inputs, 3)
	require.True(t, ev.Inputs[2].Indexed)
}

func TestParseEventSignatureTuple(t *testing.T) {
	ev, err := ParseEventSignature("NounCreated(uint256 indexed tokenId, (uint48 background, uint48 body, uint48 accessory, uint48 head, uint48 glasses) seed)")
	require.NoError(t, err)
	require.Equal(t, "NounCreated(uint256,(uint48,uint48,uint48,uint48,uint48))", ev.Sig)
	require.Len(t, ev.Inputs.NonIndexed(), 1)
}

func TestParseEventSignatureInvalid(t *testing.T) {
	for _, sig := range []string{
		"Broken",
		"Broken(uint256 a",
		"Broken(uint256)",
		"Broken(notatype a)",
		"Broken((uint8 a) b",
	} {
		_, err := ParseEventSignature(sig)
		require.Error(t, err, sig)
	}
}

func TestBook(t *testing.T) {
	book, err := NewBook(MainnetAddresses)
	require.NoError(t, err)

	binding, ok := book.Lookup("AuctionBid")
	require.True(t, ok)
	require.Equal(t, AuctionHouse, binding.Group)
	require.Equal(t, common.HexToAddress(MainnetAddresses[AuctionHouse]), binding.Address)

	address, ok := book.Address(Token)
	require.True(t, ok)
	require.Equal(t, common.HexToAddress(MainnetAddresses[Token]), address)

	_, ok = book.Lookup("Nope")
	require.False(t, ok)

	_, err = NewBook(map[Group]string{Token: "0x1234"})
	require.Error(t, err)

	partial, err := NewBook(map[Group]string{Token: MainnetAddresses[Token]})
	require.NoError(t, err)
	_, ok = partial.Lookup("VoteCast")
	require.False(t, ok)
}

func TestParseGroup(t *testing.T) {
	g, err := ParseGroup(" Governance_Data ")
	require.NoError(t, err)
	require.Equal(t, GovernanceData, g)

	_, err = ParseGroup("treasury")
	require.Error(t, err)
}
