// Package activityscan attributes block authorship and heartbeats to the
// current validator set over a range of finalized blocks.
//
// A scan starts after the caller's cursor, covers at most maxWindow blocks
// and is processed in sequential batches whose blocks are fetched
// concurrently. Blocks that cannot be fetched are listed in the report
// instead of failing the scan. When the caller's deadline gets close the scan
// stops between batches and reports the last completed block, so the caller
// can continue from there.
package activityscan

import (
	"cmp"
	"context"
	"fmt"
	"time"

	"github.com/gabapcia/validatorwatch/internal/pkg/logger"
	"github.com/gabapcia/validatorwatch/internal/pkg/validator"

	"github.com/alitto/pond/v2"
	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultBatchSize      = 50
	defaultMaxWindow      = 1000
	defaultBlockTimeout   = 10 * time.Second
	defaultDeadlineMargin = 2 * time.Second
	defaultMaxConcurrency = 50
)

// Request is one scan invocation. Zero BatchSize or MaxWindow selects the configured default.
type Request struct {
	StartBlock int64 `json:"startBlock" validate:"gte=0"`
	BatchSize  int   `json:"batchSize" validate:"gte=0,lte=500"`
	MaxWindow  int   `json:"maxWindow" validate:"gte=0,lte=100000"`
}

type Service interface {
	// Scan reports validator activity for the blocks after req.StartBlock.
	Scan(ctx context.Context, req Request) (Report, error)
}

type service struct {
	connector     ChainConnector
	keyOwnerCache KeyOwnerCache
	clock         clockwork.Clock
	pool          pond.ResultPool[blockResult]

	batchSize      int
	maxWindow      int
	keyConcurrency int
	blockTimeout   time.Duration
	deadlineMargin time.Duration

	instruments
}

var _ Service = (*service)(nil)

func (s *service) Scan(ctx context.Context, req Request) (Report, error) {
	if req.StartBlock < 0 {
		return Report{}, ErrInvalidStartBlock
	}

	if err := validator.Validate(req); err != nil {
		return Report{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	ctx, span := s.tracer.Start(ctx, "activityscan.Scan", trace.WithAttributes(
		attribute.Int64("scan.start_block", req.StartBlock),
	))
	defer span.End()

	ctx = logger.Derive(ctx, "scan.start_block", req.StartBlock)

	report, err := s.scan(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Report{}, err
	}

	span.SetAttributes(
		attribute.Int64("scan.to_block", int64(report.ToBlock)),
		attribute.Int64("scan.head", int64(report.Head)),
		attribute.Int("scan.skipped", len(report.Skipped)),
		attribute.Bool("scan.has_more", report.HasMore),
	)

	return report, nil
}

func (s *service) scan(ctx context.Context, req Request) (Report, error) {
	chain, err := s.connector.Connect(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("%w: connect: %w", ErrChainUnavailable, err)
	}

	finalized, err := chain.FinalizedHead(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("%w: finalized head: %w", ErrChainUnavailable, err)
	}

	validators, err := chain.Validators(ctx, finalized.Hash)
	if err != nil {
		return Report{}, fmt.Errorf("%w: validators: %w", ErrChainUnavailable, err)
	}

	head := finalized.Number

	var (
		start     = uint64(req.StartBlock)
		batchSize = cmp.Or(req.BatchSize, s.batchSize)
		w         = newWindow(start, head, cmp.Or(req.MaxWindow, s.maxWindow))
		agg       = newAggregator(validators)
		keys      = newKeyResolver(chain, s.keyOwnerCache, s.keyConcurrency, s.blockTimeout)
		cursor    = start
		skipped   = []SkippedBlock{}
		scannedAt = s.clock.Now().UTC()
	)

	logger.Debug(ctx, "scan window resolved",
		"scan.from_block", w.from,
		"scan.to_block", w.to,
		"scan.head", head,
		"scan.validators", len(validators),
	)

	for _, batch := range w.batches(batchSize) {
		if s.deadlineApproaching(ctx) {
			logger.Info(ctx, "stopping scan before deadline", "scan.cursor", cursor)
			break
		}

		results, ok := s.scanBatch(ctx, chain, keys, batch)
		if !ok {
			logger.Info(ctx, "discarding interrupted batch", "batch.first", batch[0], "scan.cursor", cursor)
			break
		}

		skipped = append(skipped, s.aggregate(ctx, results, agg, keys)...)
		cursor = batch[len(batch)-1]
	}

	return Report{
		FromBlock:  w.from,
		ToBlock:    cursor,
		Head:       head,
		ScannedAt:  scannedAt,
		Validators: agg.result(),
		HasMore:    cursor < head,
		Skipped:    skipped,
	}, nil
}

// deadlineApproaching reports whether a new batch should not be started.
func (s *service) deadlineApproaching(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}

	deadline, ok := ctx.Deadline()
	return ok && deadline.Sub(s.clock.Now()) < s.deadlineMargin
}

// scanBatch fetches every block of batch through the shared pool and
// resolves the heartbeat keys found in them. ok is false when ctx ended
// before the batch completed; its results must not be used.
func (s *service) scanBatch(ctx context.Context, chain Chain, keys *keyResolver, batch []uint64) ([]blockResult, bool) {
	ctx, span := s.tracer.Start(ctx, "activityscan.batch", trace.WithAttributes(
		attribute.Int64("batch.first", int64(batch[0])),
		attribute.Int("batch.size", len(batch)),
	))
	defer span.End()

	group := s.pool.NewGroupContext(ctx)
	for _, number := range batch {
		group.Submit(func() blockResult {
			return s.fetchBlock(ctx, chain, number)
		})
	}

	results, err := group.Wait()
	if err != nil || ctx.Err() != nil {
		return nil, false
	}

	var heartbeatKeys []AuthorityKey
	for _, result := range results {
		if !result.skipped() {
			heartbeatKeys = append(heartbeatKeys, result.Record.Heartbeats...)
		}
	}

	if failed := keys.resolveAll(ctx, heartbeatKeys); failed > 0 {
		s.keysUnresolved.Add(ctx, int64(failed))
	}

	if ctx.Err() != nil {
		return nil, false
	}

	return results, true
}

// aggregate adds the batch's blocks to agg in block order and returns the skipped ones.
func (s *service) aggregate(ctx context.Context, results []blockResult, agg *aggregator, keys *keyResolver) []SkippedBlock {
	var skipped []SkippedBlock
	for _, result := range results {
		if result.skipped() {
			logger.Warn(ctx, "block skipped", "block.number", result.Number, "error", result.Err)
			skipped = append(skipped, SkippedBlock{Block: result.Number, Reason: result.Err.Error()})
			continue
		}

		record := result.Record
		entry := Entry{Block: record.Number, Time: record.Time}

		agg.addAuthored(record.Author, entry)
		for _, key := range record.Heartbeats {
			if owner, ok := keys.owner(key); ok {
				agg.addHeartbeat(owner, entry)
			}
		}
	}

	s.blocksScanned.Add(ctx, int64(len(results)-len(skipped)))
	if len(skipped) > 0 {
		s.blocksSkipped.Add(ctx, int64(len(skipped)), metric.WithAttributes(attribute.String("reason", "fetch")))
	}

	return skipped
}

type config struct {
	keyOwnerCache  KeyOwnerCache
	clock          clockwork.Clock
	batchSize      int
	maxWindow      int
	maxConcurrency int
	blockTimeout   time.Duration
	deadlineMargin time.Duration
}

type Option func(*config)

// New creates a scanner that obtains chains from connector.
//
// Defaults: batches of 50 blocks, windows of 1000 blocks, 10s per block,
// stop 2s before the caller's deadline, at most 50 concurrent block fetches
// shared by all scans of this service.
func New(connector ChainConnector, opts ...Option) *service {
	cfg := config{
		clock:          clockwork.NewRealClock(),
		batchSize:      defaultBatchSize,
		maxWindow:      defaultMaxWindow,
		maxConcurrency: defaultMaxConcurrency,
		blockTimeout:   defaultBlockTimeout,
		deadlineMargin: defaultDeadlineMargin,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		connector:      connector,
		keyOwnerCache:  cfg.keyOwnerCache,
		clock:          cfg.clock,
		pool:           pond.NewResultPool[blockResult](cfg.maxConcurrency),
		batchSize:      cfg.batchSize,
		maxWindow:      cfg.maxWindow,
		keyConcurrency: cfg.maxConcurrency,
		blockTimeout:   cfg.blockTimeout,
		deadlineMargin: cfg.deadlineMargin,
		instruments:    newInstruments(),
	}
}

// Close waits for in-flight block fetches and releases the worker pool.
func (s *service) Close() {
	s.pool.StopAndWait()
}

// WithKeyOwnerCache consults cache before asking the chain for key owners.
func WithKeyOwnerCache(cache KeyOwnerCache) Option {
	return func(c *config) {
		c.keyOwnerCache = cache
	}
}

func WithClock(clock clockwork.Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithBatchSize sets how many blocks are fetched concurrently before moving on.
func WithBatchSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// WithMaxWindow caps how many blocks one scan covers.
func WithMaxWindow(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxWindow = n
		}
	}
}

// WithMaxConcurrency bounds concurrent block fetches across all scans, and
// concurrent key lookups within one scan.
func WithMaxConcurrency(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxConcurrency = n
		}
	}
}

// WithBlockTimeout bounds the fetches of a single block.
func WithBlockTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.blockTimeout = d
		}
	}
}

// WithDeadlineMargin sets how long before the caller's deadline no new batch is started.
func WithDeadlineMargin(d time.Duration) Option {
	return func(c *config) {
		c.deadlineMargin = d
	}
}
