package indexer

import (
	"errors"
	"fmt"
	"strings"
)

// Mode names the operation that produced a Result.
type Mode string

const (
	ModeIndex  Mode = "index"
	ModeUpdate Mode = "update"
	ModeListen Mode = "listen"
)

// Result is the outcome of one event type's run.
type Result struct {
	Event     string
	Mode      Mode
	FromBlock uint64
	// ChainHead is the head captured when the run started.
	ChainHead uint64
	// LastBlock is the last block fully covered by committed batches.
	LastBlock uint64
	Batches   int
	Records   int
	Err       error
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Summary collects per-event results of a bulk run.
type Summary []Result

func (s Summary) Succeeded() []string {
	var out []string
	for _, r := range s {
		if r.OK() {
			out = append(out, r.Event)
		}
	}
	return out
}

func (s Summary) Failed() []Result {
	var out []Result
	for _, r := range s {
		if !r.OK() {
			out = append(out, r)
		}
	}
	return out
}

func (s Summary) Records() int {
	total := 0
	for _, r := range s {
		total += r.Records
	}
	return total
}

// Err joins the failures of every event type, or returns nil.
func (s Summary) Err() error {
	var errs []error
	for _, r := range s.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", r.Event, r.Err))
	}
	return errors.Join(errs...)
}

func (s Summary) String() string {
	failed := s.Failed()
	names := make([]string, 0, len(failed))
	for _, r := range failed {
		names = append(names, r.Event)
	}
	return fmt.Sprintf("%d succeeded, %d failed [%s], %d records",
		len(s)-len(failed), len(failed), strings.Join(names, ","), s.Records())
}
