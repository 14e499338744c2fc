package registry

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"nounsIndexer/internal/contracts"
	"nounsIndexer/internal/model"
)

var voter = common.HexToAddress("0xAbCdEf0123456789AbCdEf0123456789AbCdEf01")

func provenance(block, logIndex uint64) model.Provenance {
	return model.Provenance{
		BlockNumber: block,
		BlockHash:   "0xb10c",
		TxHash:      "0x7e",
		LogIndex:    logIndex,
		Address:     contracts.MainnetAddresses[contracts.GovernanceCore],
	}
}

func TestRegistryCoversEveryContractEvent(t *testing.T) {
	reg, err := New()
	require.NoError(t, err)

	total := 0
	for _, group := range contracts.Groups {
		events, err := contracts.Events(group)
		require.NoError(t, err)

		names := reg.Group(group)
		require.Len(t, names, len(events), "group %s", group)
		for _, name := range names {
			event, ok := events[name]
			require.True(t, ok, "%s has no ABI in %s", name, group)

			entry, err := reg.Lookup(name)
			require.NoError(t, err)
			require.Equal(t, group, entry.Group)
			require.Equal(t, len(event.Inputs), entry.Arity, "arity of %s", name)
		}
		total += len(names)
	}
	require.Len(t, reg.Names(), total)
}

func TestRegistryResolveUnknown(t *testing.T) {
	reg, err := New()
	require.NoError(t, err)

	_, err = reg.Resolve("NotARealEvent")
	require.ErrorIs(t, err, ErrUnsupportedEvent)

	_, err = reg.DecodeRecord("NotARealEvent", json.RawMessage(`{}`))
	require.ErrorIs(t, err, ErrUnsupportedEvent)
}

func TestRegistryRejectsDuplicateNames(t *testing.T) {
	entries := auctionHouseEntries()
	_, err := build(map[contracts.Group][]Entry{
		contracts.AuctionHouse: append(entries, entries[0]),
	})
	require.Error(t, err)
}

func TestParseVoteCast(t *testing.T) {
	reg, err := New()
	require.NoError(t, err)

	parse, err := reg.Resolve("VoteCast")
	require.NoError(t, err)

	record, err := parse(model.RawEvent{
		Name:       "VoteCast",
		Args:       []interface{}{voter, big.NewInt(42), uint8(1), big.NewInt(3), "lfg"},
		Provenance: provenance(15000000, 7),
	})
	require.NoError(t, err)

	vote, ok := record.(model.VoteCast)
	require.True(t, ok)
	require.Equal(t, "0xabcdef0123456789abcdef0123456789abcdef01", vote.Voter.ID)
	require.Equal(t, uint64(42), vote.ProposalID)
	require.Equal(t, model.VoteFor, vote.SupportDetailed)
	require.Equal(t, "3", vote.Votes.String())
	require.Equal(t, "lfg", vote.Reason)
	require.Equal(t, uint64(15000000), vote.Origin().BlockNumber)
	require.Equal(t, uint64(7), vote.Origin().LogIndex)

	encoded, err := json.Marshal(vote)
	require.NoError(t, err)
	require.Contains(t, string(encoded), `"support_detailed":"FOR"`)
	require.Contains(t, string(encoded), `"provenance":{`)

	decoded, err := reg.DecodeRecord("VoteCast", encoded)
	require.NoError(t, err)
	require.Equal(t, vote.Voter, decoded.(model.VoteCast).Voter)
	require.True(t, vote.Votes.Equal(decoded.(model.VoteCast).Votes))
}

func TestParseRejectsInvalidInput(t *testing.T) {
	reg, err := New()
	require.NoError(t, err)
	parse, err := reg.Resolve("VoteCast")
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  model.RawEvent
	}{
		{
			name: "arity",
			raw:  model.RawEvent{Name: "VoteCast", Args: []interface{}{voter}},
		},
		{
			name: "support out of range",
			raw:  model.RawEvent{Name: "VoteCast", Args: []interface{}{voter, big.NewInt(1), uint8(3), big.NewInt(1), ""}},
		},
		{
			name: "proposal id overflow",
			raw: model.RawEvent{Name: "VoteCast", Args: []interface{}{
				voter, new(big.Int).Lsh(big.NewInt(1), 64), uint8(0), big.NewInt(1), "",
			}},
		},
		{
			name: "wrong type",
			raw:  model.RawEvent{Name: "VoteCast", Args: []interface{}{"nope", big.NewInt(1), uint8(0), big.NewInt(1), ""}},
		},
		{
			name: "wrong event name",
			raw:  model.RawEvent{Name: "Transfer", Args: []interface{}{voter, big.NewInt(1), uint8(0), big.NewInt(1), ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(tt.raw)
			require.Error(t, err)
		})
	}
}

func TestParseKeepsLargeAmounts(t *testing.T) {
	reg, err := New()
	require.NoError(t, err)
	parse, err := reg.Resolve("AuctionBid")
	require.NoError(t, err)

	wei, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
	require.True(t, ok)

	record, err := parse(model.RawEvent{
		Name:       "AuctionBid",
		Args:       []interface{}{big.NewInt(1), voter, wei, true},
		Provenance: provenance(13100000, 0),
	})
	require.NoError(t, err)

	bid := record.(model.AuctionBid)
	require.Equal(t, "123456789012345678901234567890", bid.Amount.String())
	require.True(t, bid.Extended)
	require.Equal(t, uint64(1), bid.NounID)
}

func TestParseProposalTransactions(t *testing.T) {
	reg, err := New()
	require.NoError(t, err)
	parse, err := reg.Resolve("ProposalCreated")
	require.NoError(t, err)

	target := common.HexToAddress("0x1111111111111111111111111111111111111111")
	calldata := []byte{0xde, 0xad, 0xbe, 0xef}

	record, err := parse(model.RawEvent{
		Name: "ProposalCreated",
		Args: []interface{}{
			big.NewInt(9),
			voter,
			[]common.Address{target},
			[]*big.Int{big.NewInt(1000)},
			[]string{"transfer(address,uint256)"},
			[][]byte{calldata},
			big.NewInt(100),
			big.NewInt(200),
			"# Title",
		},
		Provenance: provenance(14000000, 3),
	})
	require.NoError(t, err)

	created := record.(model.ProposalCreated)
	require.Equal(t, uint64(9), created.ProposalID)
	require.Equal(t, []model.Account{{ID: "0x1111111111111111111111111111111111111111"}}, created.Targets)
	require.Equal(t, "1000", created.Values[0].String())
	require.Equal(t, "0xdeadbeef", created.Calldatas[0].String())

	calldata[0] = 0x00
	require.Equal(t, "0xdeadbeef", created.Calldatas[0].String())
}

func TestParseNounCreatedSeed(t *testing.T) {
	reg, err := New()
	require.NoError(t, err)
	parse, err := reg.Resolve("NounCreated")
	require.NoError(t, err)

	seed := struct {
		Background *big.Int `json:"background"`
		Body       *big.Int `json:"body"`
		Accessory  *big.Int `json:"accessory"`
		Head       *big.Int `json:"head"`
		Glasses    *big.Int `json:"glasses"`
	}{big.NewInt(1), big.NewInt(2), big.NewInt(3), big.NewInt(4), big.NewInt(5)}

	record, err := parse(model.RawEvent{
		Name:       "NounCreated",
		Args:       []interface{}{big.NewInt(11), seed},
		Provenance: provenance(13100000, 1),
	})
	require.NoError(t, err)
	require.Equal(t, model.Seed{Background: 1, Body: 2, Accessory: 3, Head: 4, Glasses: 5}, record.(model.NounCreated).Seed)
}
