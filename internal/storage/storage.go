package storage

import (
	"encoding/json"
	"errors"

	"nounsIndexer/internal/model"
)

var (
	// ErrCorruptIndex is returned when a persisted index cannot be parsed.
	ErrCorruptIndex = errors.New("corrupt index")
	// ErrWriteFailure is returned when an index could not be written.
	// The previously durable content is left untouched.
	ErrWriteFailure = errors.New("index write failed")
	// ErrOutOfOrder is returned when appended records do not strictly
	// follow the last persisted record in chain order.
	ErrOutOfOrder = errors.New("record out of chain order")
)

// Storage is the per-event append-only record log.
type Storage interface {
	ReadAll(name string) ([]model.Record, error)
	Append(name string, records []model.Record) error
	Rewrite(name string, records []model.Record) error
	LastBlock(name string) (uint64, bool, error)

	// A rebuild fills a side log that replaces the index only on commit.
	BeginRebuild(name string) error
	AppendRebuild(name string, records []model.Record) error
	CommitRebuild(name string) error
}

// RecordDecoder turns a persisted record of an event type back into a Record.
type RecordDecoder func(name string, raw json.RawMessage) (model.Record, error)
