package indexer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"nounsIndexer/internal/chain"
	"nounsIndexer/internal/listener"
	"nounsIndexer/internal/metrics"
	"nounsIndexer/internal/model"
	"nounsIndexer/internal/registry"
	"nounsIndexer/internal/storage"
)

// Config holds runtime settings for the indexer.
type Config struct {
	GenesisBlock uint64
	BatchSize    uint64
	MaxRetries   int
	RetryBackoff time.Duration
	QueryTimeout time.Duration
	// Concurrency bounds how many event types backfill at once.
	Concurrency int
}

// LogSource is the chain side of the indexer.
type LogSource interface {
	HeadBlock(ctx context.Context) (uint64, error)
	QueryLogs(ctx context.Context, name string, fromBlock, toBlock uint64) ([]model.RawEvent, error)
}

// Listeners registers live listeners by event name.
type Listeners interface {
	OnFrom(ctx context.Context, name string, fromBlock uint64, fn listener.Func, onErr listener.ErrFunc) error
	Off(name string)
}

// Mirror receives every committed batch after it is durable in the store.
type Mirror interface {
	MirrorEvents(ctx context.Context, name string, records []model.Record) error
}

type Option func(*Indexer)

func WithListeners(l Listeners) Option {
	return func(ix *Indexer) { ix.listeners = l }
}

func WithMirror(m Mirror) Option {
	return func(ix *Indexer) { ix.mirror = m }
}

// Indexer backfills, updates and live-follows event types into the store.
type Indexer struct {
	cfg       Config
	registry  *registry.Registry
	source    LogSource
	store     storage.Storage
	listeners Listeners
	mirror    Mirror
	logger    *zap.Logger
	catchUp   chan struct{}
}

// New builds an Indexer with its dependencies.
func New(cfg Config, reg *registry.Registry, source LogSource, store storage.Storage, logger *zap.Logger, opts ...Option) *Indexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	ix := &Indexer{
		cfg:      cfg,
		registry: reg,
		source:   source,
		store:    store,
		logger:   logger,
		catchUp:  make(chan struct{}, cfg.Concurrency),
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// Index rebuilds the index of one event type from the genesis block. The
// rebuild goes to a side log; the existing index is replaced only once the
// rebuild reaches the chain head.
func (ix *Indexer) Index(ctx context.Context, name string) (Result, error) {
	res := Result{Event: name, Mode: ModeIndex}
	parse, err := ix.registry.Resolve(name)
	if err != nil {
		return ix.fail(res, err)
	}
	if err := ix.validate(); err != nil {
		return ix.fail(res, err)
	}

	head, err := ix.headBlock(ctx, name)
	if err != nil {
		return ix.fail(res, err)
	}
	if err := ix.store.BeginRebuild(name); err != nil {
		return ix.fail(res, fmt.Errorf("begin rebuild: %w", err))
	}

	res, err = ix.run(ctx, res, parse, ix.store.AppendRebuild, ix.cfg.GenesisBlock, head)
	if err != nil {
		return res, err
	}
	if err := ix.store.CommitRebuild(name); err != nil {
		return ix.fail(res, fmt.Errorf("commit rebuild: %w", err))
	}
	return res, nil
}

// Update continues the index of one event type from the block after its last
// record, or from genesis when nothing is indexed yet.
func (ix *Indexer) Update(ctx context.Context, name string) (Result, error) {
	return ix.update(ctx, Result{Event: name, Mode: ModeUpdate})
}

func (ix *Indexer) update(ctx context.Context, res Result) (Result, error) {
	parse, err := ix.registry.Resolve(res.Event)
	if err != nil {
		return ix.fail(res, err)
	}
	if err := ix.validate(); err != nil {
		return ix.fail(res, err)
	}

	from := ix.cfg.GenesisBlock
	last, ok, err := ix.store.LastBlock(res.Event)
	if err != nil {
		return ix.fail(res, err)
	}
	if ok && last+1 > from {
		from = last + 1
	}

	head, err := ix.headBlock(ctx, res.Event)
	if err != nil {
		return ix.fail(res, err)
	}
	if !ok {
		// an event type with no occurrences still gets an (empty) index
		if err := ix.store.Rewrite(res.Event, nil); err != nil {
			return ix.fail(res, fmt.Errorf("init index: %w", err))
		}
	}

	return ix.run(ctx, res, parse, ix.store.Append, from, head)
}

// Listen catches one event type up to the chain head, then appends live
// events until ctx is cancelled. A live event that cannot be parsed or
// appended stops the listener and fails Listen, so the next Update picks it
// up from the chain.
func (ix *Indexer) Listen(ctx context.Context, name string) (Result, error) {
	res := Result{Event: name, Mode: ModeListen}
	if _, err := ix.registry.Resolve(name); err != nil {
		return ix.fail(res, err)
	}
	if ix.listeners == nil {
		return ix.fail(res, fmt.Errorf("no listeners configured"))
	}

	select {
	case ix.catchUp <- struct{}{}:
	case <-ctx.Done():
		return res, nil
	}
	res, err := ix.update(ctx, res)
	<-ix.catchUp
	if err != nil {
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			// stopped while catching up
			res.Err = nil
			return res, nil
		}
		return res, err
	}

	logger := ix.logger.With(zap.String("event", name))
	var (
		live    atomic.Int64
		stopped atomic.Bool
		failed  = make(chan error, 1)
	)
	report := func(err error) {
		stopped.Store(true)
		select {
		case failed <- err:
		default:
		}
	}
	from := res.ChainHead + 1
	err = ix.listeners.OnFrom(ctx, name, from, func(record model.Record) {
		if stopped.Load() {
			return
		}
		appended, err := ix.appendLive(ctx, name, record)
		if err != nil {
			report(err)
			return
		}
		if appended {
			live.Add(1)
		}
	}, func(err error) {
		report(fmt.Errorf("%w: %w", ErrParse, err))
	})
	if err != nil {
		return ix.fail(res, fmt.Errorf("listen: %w", err))
	}
	logger.Info("listening", zap.Uint64("from", from))

	var liveErr error
	select {
	case <-ctx.Done():
	case liveErr = <-failed:
	}
	ix.listeners.Off(name)

	res.Records += int(live.Load())
	if liveErr != nil {
		logger.Warn("listener failed", zap.Int64("live_records", live.Load()), zap.Error(liveErr))
		return ix.fail(res, fmt.Errorf("live %s: %w", name, liveErr))
	}
	logger.Info("listener stopped", zap.Int64("live_records", live.Load()))
	return res, nil
}

// IndexAll runs Index for every registered event type.
func (ix *Indexer) IndexAll(ctx context.Context) (Summary, error) {
	return ix.RunEvents(ctx, ModeIndex, ix.registry.Names())
}

// UpdateAll runs Update for every registered event type.
func (ix *Indexer) UpdateAll(ctx context.Context) (Summary, error) {
	return ix.RunEvents(ctx, ModeUpdate, ix.registry.Names())
}

// ListenAll runs Listen for every registered event type.
func (ix *Indexer) ListenAll(ctx context.Context) (Summary, error) {
	return ix.RunEvents(ctx, ModeListen, ix.registry.Names())
}

// RunEvents runs one mode over the given event names. A failing event type
// does not stop the others; the returned error joins every failure.
func (ix *Indexer) RunEvents(ctx context.Context, mode Mode, names []string) (Summary, error) {
	var (
		op    func(context.Context, string) (Result, error)
		limit = ix.cfg.Concurrency
	)
	switch mode {
	case ModeIndex:
		op = ix.Index
	case ModeUpdate:
		op = ix.Update
	case ModeListen:
		// listeners stay open until ctx is done, catch-up is bounded by catchUp
		op, limit = ix.Listen, 0
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}

	results := make(Summary, len(names))
	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			res, err := op(ctx, name)
			res.Event = name
			res.Mode = mode
			res.Err = err
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	ix.logger.Info("run finished", zap.String("mode", string(mode)), zap.Stringer("summary", results))
	return results, results.Err()
}

// run backfills [from, head] batch by batch through appendBatch.
func (ix *Indexer) run(
	ctx context.Context,
	res Result,
	parse registry.ParserFunc,
	appendBatch func(name string, records []model.Record) error,
	from, head uint64,
) (Result, error) {
	name := res.Event
	logger := ix.logger.With(zap.String("event", name), zap.String("mode", string(res.Mode)))

	res.FromBlock = from
	res.ChainHead = head
	if from > 0 {
		res.LastBlock = from - 1
	}

	if from > head {
		logger.Info("nothing to sync", zap.Uint64("from", from), zap.Uint64("head", head))
		return res, nil
	}

	ranges, err := SplitRange(from, head, ix.cfg.BatchSize)
	if err != nil {
		return ix.fail(res, err)
	}

	logger.Info("backfill start", zap.Uint64("from", from), zap.Uint64("head", head), zap.Int("batches", len(ranges)))
	for _, blockRange := range ranges {
		select {
		case <-ctx.Done():
			return ix.fail(res, ctx.Err())
		default:
		}

		logger.Debug("fetch logs", zap.Stringer("range", blockRange))

		raws, err := ix.queryLogs(ctx, name, blockRange.From, blockRange.To)
		if err != nil {
			return ix.fail(res, fmt.Errorf("%w: %s %s: %w", ErrChainQuery, name, blockRange, err))
		}

		records := make([]model.Record, 0, len(raws))
		for _, raw := range raws {
			record, err := parse(raw)
			if err != nil {
				return ix.fail(res, fmt.Errorf("%w: %s at %s: %w", ErrParse, name, raw.Provenance, err))
			}
			records = append(records, record)
		}

		if err := appendBatch(name, records); err != nil {
			return ix.fail(res, fmt.Errorf("store %s: %w", name, err))
		}
		ix.mirrorBatch(ctx, name, records)

		res.Batches++
		res.Records += len(records)
		res.LastBlock = blockRange.To

		metrics.BatchInc(name)
		metrics.RecordsAdd(name, "backfill", len(records))
		metrics.LastIndexedBlockSet(name, blockRange.To)

		logger.Info("batch complete",
			zap.Int("records", len(records)),
			zap.Uint64("from", blockRange.From),
			zap.Uint64("to", blockRange.To),
			zap.Uint64("blocks", blockRange.Blocks()))
	}

	logger.Info("caught up", zap.Uint64("head", head), zap.Int("records", res.Records))
	return res, nil
}

// appendLive reports whether the record was appended. A record already
// covered by the index is skipped without error.
func (ix *Indexer) appendLive(ctx context.Context, name string, record model.Record) (bool, error) {
	p := record.Origin()
	if err := ix.store.Append(name, []model.Record{record}); err != nil {
		if errors.Is(err, storage.ErrOutOfOrder) {
			ix.logger.Warn("skip live record already covered by index",
				zap.String("event", name), zap.Uint64("block", p.BlockNumber), zap.Uint64("log_index", p.LogIndex))
			return false, nil
		}
		return false, fmt.Errorf("append block %d log %d: %w", p.BlockNumber, p.LogIndex, err)
	}
	ix.mirrorBatch(ctx, name, []model.Record{record})

	metrics.RecordsAdd(name, "live", 1)
	metrics.LastIndexedBlockSet(name, p.BlockNumber)
	ix.logger.Debug("live record appended", zap.String("event", name), zap.Uint64("block", p.BlockNumber))
	return true, nil
}

func (ix *Indexer) mirrorBatch(ctx context.Context, name string, records []model.Record) {
	if ix.mirror == nil || len(records) == 0 {
		return
	}
	if err := ix.mirror.MirrorEvents(ctx, name, records); err != nil {
		ix.logger.Warn("mirror batch failed", zap.String("event", name), zap.Int("records", len(records)), zap.Error(err))
	}
}

func (ix *Indexer) headBlock(ctx context.Context, name string) (uint64, error) {
	var head uint64
	err := withRetry(ctx, ix.cfg.MaxRetries, ix.cfg.RetryBackoff, ix.cfg.QueryTimeout, ix.onRetry(name, "head block"), func(ctx context.Context) error {
		var err error
		head, err = ix.source.HeadBlock(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("%w: head block: %w", ErrChainQuery, err)
	}
	return head, nil
}

func (ix *Indexer) queryLogs(ctx context.Context, name string, fromBlock, toBlock uint64) ([]model.RawEvent, error) {
	var raws []model.RawEvent
	err := withRetry(ctx, ix.cfg.MaxRetries, ix.cfg.RetryBackoff, ix.cfg.QueryTimeout, ix.onRetry(name, "query logs"), func(ctx context.Context) error {
		start := time.Now()
		var err error
		raws, err = ix.source.QueryLogs(ctx, name, fromBlock, toBlock)
		metrics.QueryDurationObserve(name, time.Since(start).Seconds())
		if errors.Is(err, chain.ErrUnknownEvent) {
			return permanent(err)
		}
		return err
	})
	return raws, err
}

func (ix *Indexer) onRetry(name, op string) func(int, error) {
	return func(attempt int, err error) {
		metrics.QueryRetryInc(name)
		ix.logger.Warn(op+" failed, retrying", zap.String("event", name), zap.Int("attempt", attempt), zap.Error(err))
	}
}

func (ix *Indexer) validate() error {
	if ix.source == nil {
		return fmt.Errorf("log source is nil")
	}
	if ix.store == nil {
		return fmt.Errorf("storage is nil")
	}
	if ix.cfg.BatchSize == 0 {
		return fmt.Errorf("batch size must be greater than zero")
	}
	return nil
}

func (ix *Indexer) fail(res Result, err error) (Result, error) {
	res.Err = err
	metrics.RunFailureInc(res.Event)
	ix.logger.Error("index run failed", zap.String("event", res.Event), zap.String("mode", string(res.Mode)), zap.Error(err))
	return res, err
}
