package chain

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
	"go.uber.org/zap"

	"nounsIndexer/internal/contracts"
	"nounsIndexer/internal/model"
)

// ErrUnknownEvent is returned for event names the contract book does not bind.
var ErrUnknownEvent = errors.New("event not bound to a contract")

// LogFilterer is the subset of Client used by EventSource.
type LogFilterer interface {
	HeadBlock(ctx context.Context, finality Finality) (uint64, error)
	FilterLogs(ctx context.Context, fromBlock, toBlock uint64, address common.Address, topic0 common.Hash) ([]types.Log, error)
}

// SourceConfig configures an EventSource.
type SourceConfig struct {
	Finality     Finality
	PollInterval time.Duration
	// MaxRange caps the block span of one polling query.
	MaxRange uint64
}

// EventSource queries and subscribes to contract events by name and decodes
// them into positional raw events.
type EventSource struct {
	client LogFilterer
	book   *contracts.Book
	cfg    SourceConfig
	logger *zap.Logger
}

func NewEventSource(client LogFilterer, book *contracts.Book, cfg SourceConfig, logger *zap.Logger) *EventSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 12 * time.Second
	}
	if cfg.MaxRange == 0 {
		cfg.MaxRange = 1000
	}
	return &EventSource{client: client, book: book, cfg: cfg, logger: logger}
}

// HeadBlock returns the chain head at the configured finality.
func (s *EventSource) HeadBlock(ctx context.Context) (uint64, error) {
	return s.client.HeadBlock(ctx, s.cfg.Finality)
}

// QueryLogs returns the decoded events of one type within [fromBlock, toBlock],
// ordered by block number and log index.
func (s *EventSource) QueryLogs(ctx context.Context, name string, fromBlock, toBlock uint64) ([]model.RawEvent, error) {
	binding, ok := s.book.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, name)
	}

	logs, err := s.client.FilterLogs(ctx, fromBlock, toBlock, binding.Address, binding.Event.ID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(logs, func(i, j int) bool {
		if logs[i].BlockNumber != logs[j].BlockNumber {
			return logs[i].BlockNumber < logs[j].BlockNumber
		}
		return logs[i].Index < logs[j].Index
	})

	events := make([]model.RawEvent, 0, len(logs))
	for _, log := range logs {
		if log.Removed {
			continue
		}
		raw, err := DecodeLog(binding.Event, log)
		if err != nil {
			return nil, fmt.Errorf("decode %s at %d:%d: %w", name, log.BlockNumber, log.Index, err)
		}
		events = append(events, raw)
	}
	return events, nil
}

// Subscribe polls for new events of one type starting at fromBlock and passes
// them to sink in chain order. A zero fromBlock starts after the current head.
// The subscription ends when ctx is done or it is unsubscribed.
func (s *EventSource) Subscribe(ctx context.Context, name string, fromBlock uint64, sink func(model.RawEvent)) (event.Subscription, error) {
	if _, ok := s.book.Lookup(name); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, name)
	}

	if fromBlock == 0 {
		head, err := s.HeadBlock(ctx)
		if err != nil {
			return nil, fmt.Errorf("get head block: %w", err)
		}
		fromBlock = head + 1
	}

	return event.NewSubscription(func(quit <-chan struct{}) error {
		ticker := time.NewTicker(s.cfg.PollInterval)
		defer ticker.Stop()

		next := fromBlock
		for {
			select {
			case <-quit:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}

			head, err := s.HeadBlock(ctx)
			if err != nil {
				s.logger.Warn("poll head failed", zap.String("event", name), zap.Error(err))
				continue
			}
			for next <= head {
				to := head
				if to-next+1 > s.cfg.MaxRange {
					to = next + s.cfg.MaxRange - 1
				}
				events, err := s.QueryLogs(ctx, name, next, to)
				if err != nil {
					s.logger.Warn("poll logs failed", zap.String("event", name), zap.Uint64("from", next), zap.Uint64("to", to), zap.Error(err))
					break
				}
				for _, ev := range events {
					select {
					case <-quit:
						return nil
					default:
					}
					sink(ev)
				}
				next = to + 1
			}
		}
	}), nil
}

// DecodeLog unpacks a log into its event arguments in signature order.
func DecodeLog(ev abi.Event, log types.Log) (model.RawEvent, error) {
	if len(log.Topics) == 0 || log.Topics[0] != ev.ID {
		return model.RawEvent{}, fmt.Errorf("topic0 does not match %s", ev.Name)
	}

	indexed := indexedArguments(ev.Inputs)
	if len(log.Topics) != len(indexed)+1 {
		return model.RawEvent{}, fmt.Errorf("expected %d topics, got %d", len(indexed)+1, len(log.Topics))
	}

	values := make(map[string]interface{}, len(ev.Inputs))
	if len(indexed) > 0 {
		if err := abi.ParseTopicsIntoMap(values, indexed, log.Topics[1:]); err != nil {
			return model.RawEvent{}, fmt.Errorf("parse topics: %w", err)
		}
	}
	if len(ev.Inputs.NonIndexed()) > 0 {
		if err := ev.Inputs.UnpackIntoMap(values, log.Data); err != nil {
			return model.RawEvent{}, fmt.Errorf("unpack %s: %w", ev.Name, err)
		}
	}

	args := make([]interface{}, 0, len(ev.Inputs))
	for _, input := range ev.Inputs {
		args = append(args, values[input.Name])
	}

	return model.RawEvent{
		Name:       ev.Name,
		Args:       args,
		Provenance: provenanceFromLog(log),
	}, nil
}

func provenanceFromLog(log types.Log) model.Provenance {
	return model.Provenance{
		BlockNumber: log.BlockNumber,
		BlockHash:   log.BlockHash.Hex(),
		TxHash:      log.TxHash.Hex(),
		TxIndex:     uint64(log.TxIndex),
		LogIndex:    uint64(log.Index),
		Address:     log.Address.Hex(),
	}
}

func indexedArguments(args abi.Arguments) abi.Arguments {
	indexed := make(abi.Arguments, 0, len(args))
	for _, arg := range args {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	return indexed
}
