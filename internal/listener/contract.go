package listener

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/event"
	"go.uber.org/zap"

	"nounsIndexer/internal/contracts"
	"nounsIndexer/internal/model"
	"nounsIndexer/internal/registry"
)

// ErrNoListener is returned by Trigger when no listener is registered.
var ErrNoListener = errors.New("no listener registered")

// Func receives normalized records in chain delivery order.
type Func func(model.Record)

// ErrFunc is told why a listener was dropped. After it runs no further
// records reach the listener's Func.
type ErrFunc func(error)

// Subscriber delivers raw events of one type from fromBlock onwards.
type Subscriber interface {
	Subscribe(ctx context.Context, name string, fromBlock uint64, sink func(model.RawEvent)) (event.Subscription, error)
}

type binding struct {
	fn    Func
	onErr ErrFunc
	parse registry.ParserFunc
	sub   event.Subscription
}

// Contract holds at most one listener per event of a contract group.
// Registering a listener for an event that already has one replaces it.
type Contract struct {
	group    contracts.Group
	source   Subscriber
	registry *registry.Registry
	logger   *zap.Logger

	mu        sync.Mutex
	listeners map[string]*binding
}

func NewContract(group contracts.Group, source Subscriber, reg *registry.Registry, logger *zap.Logger) *Contract {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Contract{
		group:     group,
		source:    source,
		registry:  reg,
		logger:    logger.With(zap.String("contract", group.String())),
		listeners: make(map[string]*binding),
	}
}

func (c *Contract) Group() contracts.Group {
	return c.group
}

// HasEvent reports whether the contract group emits the named event.
func (c *Contract) HasEvent(name string) bool {
	entry, err := c.registry.Lookup(name)
	return err == nil && entry.Group == c.group
}

// On registers fn for events emitted after the current head.
func (c *Contract) On(ctx context.Context, name string, fn Func) error {
	return c.OnFrom(ctx, name, 0, fn, nil)
}

// OnFrom registers fn for events from fromBlock onwards. A live event that
// cannot be normalized removes the listener and is reported to onErr, so
// later events are never delivered past a gap.
func (c *Contract) OnFrom(ctx context.Context, name string, fromBlock uint64, fn Func, onErr ErrFunc) error {
	parse, err := c.resolve(name)
	if err != nil {
		return err
	}
	if fn == nil {
		return fmt.Errorf("%s: nil listener", name)
	}

	c.Off(name)

	b := &binding{fn: fn, onErr: onErr, parse: parse}
	c.mu.Lock()
	c.listeners[name] = b
	c.mu.Unlock()

	if c.source == nil {
		return nil
	}
	sub, err := c.source.Subscribe(ctx, name, fromBlock, func(raw model.RawEvent) {
		c.dispatch(name, b, raw)
	})
	if err != nil {
		c.mu.Lock()
		if c.listeners[name] == b {
			delete(c.listeners, name)
		}
		c.mu.Unlock()
		return fmt.Errorf("subscribe %s: %w", name, err)
	}

	c.mu.Lock()
	if c.listeners[name] != b {
		c.mu.Unlock()
		sub.Unsubscribe()
		return nil
	}
	b.sub = sub
	c.mu.Unlock()

	go c.watch(name, sub)
	return nil
}

// Off removes the listener of an event. It is a no-op when none is registered.
func (c *Contract) Off(name string) {
	c.mu.Lock()
	var sub event.Subscription
	if b, ok := c.listeners[name]; ok {
		sub = b.sub
		delete(c.listeners, name)
	}
	c.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}
}

// Trigger normalizes raw and passes it straight to the registered listener.
func (c *Contract) Trigger(name string, raw model.RawEvent) error {
	c.mu.Lock()
	b, ok := c.listeners[name]
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoListener, name)
	}

	if raw.Name == "" {
		raw.Name = name
	}
	record, err := b.parse(raw)
	if err != nil {
		return err
	}
	b.fn(record)
	return nil
}

// Close removes every listener.
func (c *Contract) Close() {
	c.mu.Lock()
	names := make([]string, 0, len(c.listeners))
	for name := range c.listeners {
		names = append(names, name)
	}
	c.mu.Unlock()

	for _, name := range names {
		c.Off(name)
	}
}

func (c *Contract) resolve(name string) (registry.ParserFunc, error) {
	entry, err := c.registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	if entry.Group != c.group {
		return nil, fmt.Errorf("%w: %s is emitted by %s, not %s", registry.ErrUnsupportedEvent, name, entry.Group, c.group)
	}
	return entry.Parse, nil
}

func (c *Contract) dispatch(name string, b *binding, raw model.RawEvent) {
	c.mu.Lock()
	current := c.listeners[name] == b
	c.mu.Unlock()
	if !current {
		return
	}

	record, err := b.parse(raw)
	if err != nil {
		c.logger.Error("parse live event failed, dropping listener",
			zap.String("event", name),
			zap.Uint64("block", raw.Provenance.BlockNumber),
			zap.Uint64("log_index", raw.Provenance.LogIndex),
			zap.Error(err),
		)
		c.drop(name, b)
		if b.onErr != nil {
			b.onErr(fmt.Errorf("%s at %s: %w", name, raw.Provenance, err))
		}
		return
	}
	b.fn(record)
}

// drop removes b from inside its own delivery. Unsubscribe waits for the
// delivering goroutine, so it runs asynchronously here.
func (c *Contract) drop(name string, b *binding) {
	c.mu.Lock()
	if c.listeners[name] == b {
		delete(c.listeners, name)
	}
	sub := b.sub
	c.mu.Unlock()

	if sub != nil {
		go sub.Unsubscribe()
	}
}

func (c *Contract) watch(name string, sub event.Subscription) {
	err, ok := <-sub.Err()
	if ok && err != nil && !errors.Is(err, context.Canceled) {
		c.logger.Warn("subscription ended", zap.String("event", name), zap.Error(err))
	}
}
