package model

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Account is a lightweight reference to an on-chain address.
type Account struct {
	ID string `json:"id"`
}

// NewAccount builds an Account with a lowercase hex id.
func NewAccount(address common.Address) Account {
	return Account{ID: strings.ToLower(address.Hex())}
}

// AccountFromHex builds an Account from a hex string without validating it.
func AccountFromHex(address string) Account {
	return Account{ID: strings.ToLower(strings.TrimSpace(address))}
}

// Equal compares accounts by lowercase address.
func (a Account) Equal(other Account) bool {
	return strings.EqualFold(a.ID, other.ID)
}

func (a Account) String() string {
	return a.ID
}

// NewAccounts converts a slice of addresses.
func NewAccounts(addresses []common.Address) []Account {
	out := make([]Account, 0, len(addresses))
	for _, address := range addresses {
		out = append(out, NewAccount(address))
	}
	return out
}
