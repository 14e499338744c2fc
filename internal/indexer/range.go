package indexer

import "fmt"

// BlockRange is an inclusive span of blocks queried in one eth_getLogs call.
type BlockRange struct {
	From uint64
	To   uint64
}

// Blocks returns the number of blocks in the range.
func (r BlockRange) Blocks() uint64 {
	return r.To - r.From + 1
}

func (r BlockRange) String() string {
	return fmt.Sprintf("[%d, %d]", r.From, r.To)
}

// SplitRange cuts [from, to] into consecutive ranges of at most batchSize
// blocks. The last range ends exactly at to.
func SplitRange(from, to, batchSize uint64) ([]BlockRange, error) {
	if batchSize == 0 {
		return nil, fmt.Errorf("batch size must be greater than zero")
	}
	if to < from {
		return nil, fmt.Errorf("to block %d is before from block %d", to, from)
	}

	ranges := make([]BlockRange, 0, (to-from)/batchSize+1)
	for start := from; ; start += batchSize {
		if to-start < batchSize {
			return append(ranges, BlockRange{From: start, To: to}), nil
		}
		ranges = append(ranges, BlockRange{From: start, To: start + batchSize - 1})
		if start+batchSize > to {
			return ranges, nil
		}
	}
}
