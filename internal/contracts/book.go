package contracts

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Mainnet deployment addresses of the Nouns contracts (proxies).
var MainnetAddresses = map[Group]string{
	AuctionHouse:   "0x830BD73E4184ceF73443C15111a1DF14e495C706",
	GovernanceCore: "0x6f3E6272A167e8AcCb32072d08E0957F9c79223d",
	GovernanceData: "0xf790A5f59678dd733fb3De93493A91f472ca1365",
	Token:          "0x9C8fF314C9Bc7F6e59A9d9225Fb22946427eDC03",
}

// Binding ties an event to the contract that emits it.
type Binding struct {
	Group   Group
	Address common.Address
	Event   abi.Event
}

// Book resolves event names to contract bindings.
type Book struct {
	addresses map[Group]common.Address
	bindings  map[string]Binding
}

// NewBook validates addresses and indexes every event of the configured groups.
// Groups without an address are skipped.
func NewBook(addresses map[Group]string) (*Book, error) {
	book := &Book{
		addresses: make(map[Group]common.Address, len(addresses)),
		bindings:  make(map[string]Binding),
	}

	for _, group := range Groups {
		input, ok := addresses[group]
		if !ok {
			continue
		}
		address, err := ParseAddress(input)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", group, err)
		}
		events, err := Events(group)
		if err != nil {
			return nil, err
		}
		book.addresses[group] = address
		for name, event := range events {
			if existing, ok := book.bindings[name]; ok {
				return nil, fmt.Errorf("event %s declared by %s and %s", name, existing.Group, group)
			}
			book.bindings[name] = Binding{Group: group, Address: address, Event: event}
		}
	}

	return book, nil
}

// Lookup returns the binding for an event name.
func (b *Book) Lookup(name string) (Binding, bool) {
	binding, ok := b.bindings[name]
	return binding, ok
}

// Address returns the configured address of a group.
func (b *Book) Address(group Group) (common.Address, bool) {
	address, ok := b.addresses[group]
	return address, ok
}

// ParseAddress validates a hex address.
func ParseAddress(input string) (common.Address, error) {
	input = strings.TrimSpace(input)
	if !common.IsHexAddress(input) {
		return common.Address{}, fmt.Errorf("invalid address: %s", input)
	}
	return common.HexToAddress(input), nil
}
