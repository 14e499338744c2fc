package model

import "fmt"

// Provenance identifies where an event was emitted on chain.
type Provenance struct {
	BlockNumber uint64 `json:"block_number"`
	BlockHash   string `json:"block_hash"`
	TxHash      string `json:"tx_hash"`
	TxIndex     uint64 `json:"tx_index"`
	LogIndex    uint64 `json:"log_index"`
	Address     string `json:"address"`
}

// Before reports whether p sorts strictly before other in chain order.
func (p Provenance) Before(other Provenance) bool {
	if p.BlockNumber != other.BlockNumber {
		return p.BlockNumber < other.BlockNumber
	}
	return p.LogIndex < other.LogIndex
}

func (p Provenance) String() string {
	return fmt.Sprintf("%d:%d", p.BlockNumber, p.LogIndex)
}
