package listener

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"nounsIndexer/internal/contracts"
	"nounsIndexer/internal/registry"
)

// Hub routes event names to the wrapper of the contract that emits them.
type Hub struct {
	registry  *registry.Registry
	contracts map[contracts.Group]*Contract
}

func NewHub(source Subscriber, reg *registry.Registry, logger *zap.Logger) *Hub {
	h := &Hub{
		registry:  reg,
		contracts: make(map[contracts.Group]*Contract, len(contracts.Groups)),
	}
	for _, group := range contracts.Groups {
		h.contracts[group] = NewContract(group, source, reg, logger)
	}
	return h
}

func (h *Hub) AuctionHouse() *Contract   { return h.contracts[contracts.AuctionHouse] }
func (h *Hub) GovernanceCore() *Contract { return h.contracts[contracts.GovernanceCore] }
func (h *Hub) GovernanceData() *Contract { return h.contracts[contracts.GovernanceData] }
func (h *Hub) Token() *Contract          { return h.contracts[contracts.Token] }

// For returns the wrapper that emits the named event.
func (h *Hub) For(name string) (*Contract, error) {
	entry, err := h.registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	c, ok := h.contracts[entry.Group]
	if !ok {
		return nil, fmt.Errorf("no wrapper for contract group %s", entry.Group)
	}
	return c, nil
}

func (h *Hub) OnFrom(ctx context.Context, name string, fromBlock uint64, fn Func, onErr ErrFunc) error {
	c, err := h.For(name)
	if err != nil {
		return err
	}
	return c.OnFrom(ctx, name, fromBlock, fn, onErr)
}

func (h *Hub) Off(name string) {
	if c, err := h.For(name); err == nil {
		c.Off(name)
	}
}

func (h *Hub) Close() {
	for _, c := range h.contracts {
		c.Close()
	}
}
