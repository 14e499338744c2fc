package indexer

import "errors"

var (
	// ErrChainQuery wraps a chain query that kept failing after retries.
	ErrChainQuery = errors.New("chain query failed")
	// ErrParse is returned when a raw event cannot be normalized.
	ErrParse = errors.New("parse event")
)
