package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"
)

// Record is a normalized event record.
type Record interface {
	EventName() string
	Origin() Provenance
}

// Base carries the provenance shared by every record.
type Base struct {
	Provenance Provenance `json:"provenance"`
}

// Origin returns the chain position of the record.
func (b Base) Origin() Provenance {
	return b.Provenance
}

// VoteDirection is the support value of a vote or feedback.
type VoteDirection uint8

const (
	VoteAgainst VoteDirection = 0
	VoteFor     VoteDirection = 1
	VoteAbstain VoteDirection = 2
)

// ParseVoteDirection converts the on-chain support value.
func ParseVoteDirection(support uint8) (VoteDirection, error) {
	switch VoteDirection(support) {
	case VoteAgainst, VoteFor, VoteAbstain:
		return VoteDirection(support), nil
	default:
		return 0, fmt.Errorf("invalid vote direction: %d", support)
	}
}

func (d VoteDirection) String() string {
	switch d {
	case VoteAgainst:
		return "AGAINST"
	case VoteFor:
		return "FOR"
	case VoteAbstain:
		return "ABSTAIN"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(d))
	}
}

func (d VoteDirection) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *VoteDirection) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch strings.ToUpper(s) {
	case "AGAINST":
		*d = VoteAgainst
	case "FOR":
		*d = VoteFor
	case "ABSTAIN":
		*d = VoteAbstain
	default:
		return fmt.Errorf("invalid vote direction: %q", s)
	}
	return nil
}

// ProposalTransactions are the calls a proposal or candidate would execute.
// Calldatas are kept verbatim.
type ProposalTransactions struct {
	Targets    []Account         `json:"targets"`
	Values     []decimal.Decimal `json:"values"`
	Signatures []string          `json:"signatures"`
	Calldatas  []hexutil.Bytes   `json:"calldatas"`
}
