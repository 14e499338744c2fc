package model

import "github.com/shopspring/decimal"

// Seed holds the trait indexes a Noun was minted with.
type Seed struct {
	Background uint64 `json:"background"`
	Body       uint64 `json:"body"`
	Accessory  uint64 `json:"accessory"`
	Head       uint64 `json:"head"`
	Glasses    uint64 `json:"glasses"`
}

type Approval struct {
	Owner    Account `json:"owner"`
	Approved Account `json:"approved"`
	TokenID  uint64  `json:"token_id"`
	Base
}

func (Approval) EventName() string { return "Approval" }

type ApprovalForAll struct {
	Owner    Account `json:"owner"`
	Operator Account `json:"operator"`
	Approved bool    `json:"approved"`
	Base
}

func (ApprovalForAll) EventName() string { return "ApprovalForAll" }

type DelegateChanged struct {
	Delegator    Account `json:"delegator"`
	FromDelegate Account `json:"from_delegate"`
	ToDelegate   Account `json:"to_delegate"`
	Base
}

func (DelegateChanged) EventName() string { return "DelegateChanged" }

type DelegateVotesChanged struct {
	Delegate        Account         `json:"delegate"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	NewBalance      decimal.Decimal `json:"new_balance"`
	Base
}

func (DelegateVotesChanged) EventName() string { return "DelegateVotesChanged" }

type DescriptorUpdated struct {
	Descriptor Account `json:"descriptor"`
	Base
}

func (DescriptorUpdated) EventName() string { return "DescriptorUpdated" }

type MinterUpdated struct {
	Minter Account `json:"minter"`
	Base
}

func (MinterUpdated) EventName() string { return "MinterUpdated" }

type NounBurned struct {
	NounID uint64 `json:"noun_id"`
	Base
}

func (NounBurned) EventName() string { return "NounBurned" }

type NounCreated struct {
	NounID uint64 `json:"noun_id"`
	Seed   Seed   `json:"seed"`
	Base
}

func (NounCreated) EventName() string { return "NounCreated" }

type NoundersDAOUpdated struct {
	NoundersDAO Account `json:"nounders_dao"`
	Base
}

func (NoundersDAOUpdated) EventName() string { return "NoundersDAOUpdated" }

type SeederUpdated struct {
	Seeder Account `json:"seeder"`
	Base
}

func (SeederUpdated) EventName() string { return "SeederUpdated" }

type Transfer struct {
	From    Account `json:"from"`
	To      Account `json:"to"`
	TokenID uint64  `json:"token_id"`
	Base
}

func (Transfer) EventName() string { return "Transfer" }
