package model

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestVoteDirectionJSON(t *testing.T) {
	for _, d := range []VoteDirection{VoteAgainst, VoteFor, VoteAbstain} {
		data, err := json.Marshal(d)
		require.NoError(t, err)

		var decoded VoteDirection
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.Equal(t, d, decoded)
	}

	data, err := json.Marshal(VoteAbstain)
	require.NoError(t, err)
	require.Equal(t, `"ABSTAIN"`, string(data))

	var d VoteDirection
	require.Error(t, json.Unmarshal([]byte(`"MAYBE"`), &d))

	_, err = ParseVoteDirection(3)
	require.Error(t, err)
}

func TestAccountNormalization(t *testing.T) {
	address := common.HexToAddress("0x9C8fF314C9Bc7F6e59A9d9225Fb22946427eDC03")
	a := NewAccount(address)
	require.Equal(t, "0x9c8ff314c9bc7f6e59a9d9225fb22946427edc03", a.ID)
	require.True(t, a.Equal(AccountFromHex(" 0x9C8FF314C9BC7F6E59A9D9225FB22946427EDC03 ")))
	require.False(t, a.Equal(AccountFromHex("0x0000000000000000000000000000000000000000")))
}

func TestProvenanceOrder(t *testing.T) {
	a := Provenance{BlockNumber: 10, LogIndex: 5}
	b := Provenance{BlockNumber: 10, LogIndex: 6}
	c := Provenance{BlockNumber: 11, LogIndex: 0}

	require.True(t, a.Before(b))
	require.True(t, b.Before(c))
	require.False(t, b.Before(a))
	require.False(t, a.Before(a))
	require.Equal(t, "10:5", a.String())
}

func TestRecordJSONShape(t *testing.T) {
	bid := AuctionBid{
		NounID: 42,
		Bidder: AccountFromHex("0xabc"),
		Amount: decimal.RequireFromString("69420000000000000000"),
		Base:   Base{Provenance: Provenance{BlockNumber: 1, LogIndex: 2}},
	}
	data, err := json.Marshal(bid)
	require.NoError(t, err)

	var shape map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &shape))
	require.JSONEq(t, `{"id":"0xabc"}`, string(shape["bidder"]))
	require.Equal(t, `"69420000000000000000"`, string(shape["amount"]))
	require.Contains(t, shape, "provenance")
	require.Equal(t, "AuctionBid", bid.EventName())
}
