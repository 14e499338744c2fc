package listener

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/stretchr/testify/require"

	"nounsIndexer/internal/contracts"
	"nounsIndexer/internal/model"
	"nounsIndexer/internal/registry"
)

type fakeSubscription struct {
	sink   func(model.RawEvent)
	from   uint64
	sub    event.Subscription
	closed chan struct{}
}

type fakeSubscriber struct {
	mu   sync.Mutex
	subs map[string][]*fakeSubscription
	err  error
}

func newFakeSubscriber() *fakeSubscriber {
	return &fakeSubscriber{subs: make(map[string][]*fakeSubscription)}
}

func (f *fakeSubscriber) Subscribe(_ context.Context, name string, fromBlock uint64, sink func(model.RawEvent)) (event.Subscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	s := &fakeSubscription{sink: sink, from: fromBlock, closed: make(chan struct{})}
	s.sub = event.NewSubscription(func(quit <-chan struct{}) error {
		<-quit
		close(s.closed)
		return nil
	})
	f.mu.Lock()
	f.subs[name] = append(f.subs[name], s)
	f.mu.Unlock()
	return s.sub, nil
}

func (f *fakeSubscriber) latest(t *testing.T, name string) *fakeSubscription {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	subs := f.subs[name]
	require.NotEmpty(t, subs)
	return subs[len(subs)-1]
}

func bid(nounID int64, block uint64) model.RawEvent {
	return model.RawEvent{
		Name: "AuctionBid",
		Args: []interface{}{
			big.NewInt(nounID),
			common.HexToAddress("0x3333333333333333333333333333333333333333"),
			big.NewInt(1_000_000_000_000_000_000),
			false,
		},
		Provenance: model.Provenance{BlockNumber: block},
	}
}

func newAuctionHouse(t *testing.T, source Subscriber) *Contract {
	t.Helper()
	reg, err := registry.New()
	require.NoError(t, err)
	return NewContract(contracts.AuctionHouse, source, reg, nil)
}

func TestContractHasEvent(t *testing.T) {
	c := newAuctionHouse(t, nil)
	require.True(t, c.HasEvent("AuctionBid"))
	require.True(t, c.HasEvent("AuctionSettledWithClientId"))
	require.False(t, c.HasEvent("VoteCast"))
	require.False(t, c.HasEvent("Nope"))
}

func TestContractOnRejectsForeignEvents(t *testing.T) {
	c := newAuctionHouse(t, newFakeSubscriber())
	fn := func(model.Record) {}

	require.ErrorIs(t, c.On(context.Background(), "VoteCast", fn), registry.ErrUnsupportedEvent)
	require.ErrorIs(t, c.On(context.Background(), "Nope", fn), registry.ErrUnsupportedEvent)
	require.Error(t, c.On(context.Background(), "AuctionBid", nil))
}

func TestContractTrigger(t *testing.T) {
	c := newAuctionHouse(t, nil)

	err := c.Trigger("AuctionBid", bid(1, 10))
	require.ErrorIs(t, err, ErrNoListener)

	var got []model.Record
	require.NoError(t, c.On(context.Background(), "AuctionBid", func(r model.Record) {
		got = append(got, r)
	}))

	require.NoError(t, c.Trigger("AuctionBid", bid(7, 10)))
	require.Len(t, got, 1)
	require.Equal(t, uint64(7), got[0].(model.AuctionBid).NounID)
	require.Equal(t, "1000000000000000000", got[0].(model.AuctionBid).Amount.String())

	bad := bid(7, 10)
	bad.Args = bad.Args[:2]
	require.Error(t, c.Trigger("AuctionBid", bad))
	require.Len(t, got, 1)

	c.Off("AuctionBid")
	require.ErrorIs(t, c.Trigger("AuctionBid", bid(8, 11)), ErrNoListener)
	c.Off("AuctionBid")
}

func TestContractDeliversSubscribedEvents(t *testing.T) {
	source := newFakeSubscriber()
	c := newAuctionHouse(t, source)

	var got []uint64
	require.NoError(t, c.OnFrom(context.Background(), "AuctionBid", 500, func(r model.Record) {
		got = append(got, r.Origin().BlockNumber)
	}, nil))

	sub := source.latest(t, "AuctionBid")
	require.Equal(t, uint64(500), sub.from)
	sub.sink(bid(1, 501))
	sub.sink(bid(1, 502))
	require.Equal(t, []uint64{501, 502}, got)

	c.Off("AuctionBid")
	<-sub.closed
	sub.sink(bid(1, 503))
	require.Equal(t, []uint64{501, 502}, got)
}

func TestContractReplacesListener(t *testing.T) {
	source := newFakeSubscriber()
	c := newAuctionHouse(t, source)

	var first, second int
	require.NoError(t, c.On(context.Background(), "AuctionBid", func(model.Record) { first++ }))
	old := source.latest(t, "AuctionBid")

	require.NoError(t, c.On(context.Background(), "AuctionBid", func(model.Record) { second++ }))
	current := source.latest(t, "AuctionBid")
	<-old.closed

	old.sink(bid(1, 1))
	current.sink(bid(1, 2))
	require.NoError(t, c.Trigger("AuctionBid", bid(1, 3)))

	require.Equal(t, 0, first)
	require.Equal(t, 2, second)

	c.Close()
	<-current.closed
	require.ErrorIs(t, c.Trigger("AuctionBid", bid(1, 4)), ErrNoListener)
}

func TestContractSubscribeFailure(t *testing.T) {
	source := newFakeSubscriber()
	source.err = errors.New("rpc down")
	c := newAuctionHouse(t, source)

	err := c.On(context.Background(), "AuctionBid", func(model.Record) {})
	require.Error(t, err)
	require.ErrorIs(t, c.Trigger("AuctionBid", bid(1, 1)), ErrNoListener)
}

func TestHubRoutesByGroup(t *testing.T) {
	reg, err := registry.New()
	require.NoError(t, err)
	source := newFakeSubscriber()
	hub := NewHub(source, reg, nil)
	defer hub.Close()

	c, err := hub.For("VoteCast")
	require.NoError(t, err)
	require.Same(t, hub.GovernanceCore(), c)

	c, err = hub.For("Transfer")
	require.NoError(t, err)
	require.Same(t, hub.Token(), c)

	_, err = hub.For("Nope")
	require.ErrorIs(t, err, registry.ErrUnsupportedEvent)

	var n int
	require.NoError(t, hub.OnFrom(context.Background(), "AuctionBid", 10, func(model.Record) { n++ }, nil))
	require.True(t, hub.AuctionHouse().HasEvent("AuctionBid"))
	require.NoError(t, hub.AuctionHouse().Trigger("AuctionBid", bid(2, 10)))
	require.Equal(t, 1, n)

	hub.Off("AuctionBid")
	require.ErrorIs(t, hub.AuctionHouse().Trigger("AuctionBid", bid(2, 11)), ErrNoListener)
}

func TestContractDropsListenerOnUnparsableEvent(t *testing.T) {
	source := newFakeSubscriber()
	c := newAuctionHouse(t, source)

	var got []uint64
	var dropped []error
	require.NoError(t, c.OnFrom(context.Background(), "AuctionBid", 1, func(r model.Record) {
		got = append(got, r.Origin().BlockNumber)
	}, func(err error) {
		dropped = append(dropped, err)
	}))
	sub := source.latest(t, "AuctionBid")

	sub.sink(bid(1, 10))
	bad := bid(1, 11)
	bad.Args = bad.Args[:1]
	sub.sink(bad)
	sub.sink(bid(1, 12))

	require.Equal(t, []uint64{10}, got)
	require.Len(t, dropped, 1)
	require.Contains(t, dropped[0].Error(), "11:0")
	require.ErrorIs(t, c.Trigger("AuctionBid", bid(1, 13)), ErrNoListener)
	<-sub.closed
}
