// Package activityfollow keeps activity reports flowing for one network. On
// a cron schedule it scans from the stored checkpoint until it reaches the
// chain head, publishing every report and advancing the checkpoint after
// each publication.
package activityfollow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gabapcia/validatorwatch/internal/activityscan"
	"github.com/gabapcia/validatorwatch/internal/pkg/logger"
	"github.com/gabapcia/validatorwatch/internal/pkg/resilience/retry"
	"github.com/gabapcia/validatorwatch/internal/pkg/x/chflow"

	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"
)

var (
	ErrServiceAlreadyStarted = errors.New("service already started")
	ErrInvalidSchedule       = errors.New("invalid follow schedule")
)

const (
	defaultSchedule    = "@every 30s"
	defaultScanTimeout = 25 * time.Second
)

type Service interface {
	// Start runs Follow on the configured schedule until ctx ends or Close is called.
	// The first run starts immediately.
	Start(ctx context.Context) error

	// Follow scans from the checkpoint until the report reaches the chain head.
	Follow(ctx context.Context) error

	Close()
}

type closeFunc func()

type service struct {
	mu        sync.Mutex
	isStarted bool
	closeFunc closeFunc

	scanner           activityscan.Service
	network           string
	startBlock        int64
	schedule          string
	scanTimeout       time.Duration
	checkpointStorage CheckpointStorage
	reportSink        ReportSink
	retry             retry.Retry
	clock             clockwork.Clock
}

var _ Service = (*service)(nil)

func (s *service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isStarted {
		return ErrServiceAlreadyStarted
	}

	ctx, cancel := context.WithCancel(logger.Derive(ctx, "network", s.network))

	// One pending tick at most: a tick that fires while a run is in progress
	// is merged into the next run.
	ticks := make(chan struct{}, 1)

	scheduler := cron.New(cron.WithLogger(cronLogger{ctx: ctx}))
	if _, err := scheduler.AddFunc(s.schedule, func() {
		if !chflow.TrySend(ticks, struct{}{}) {
			logger.Debug(ctx, "follow run in progress, tick skipped")
		}
	}); err != nil {
		cancel()
		return fmt.Errorf("%w %q: %w", ErrInvalidSchedule, s.schedule, err)
	}

	done := make(chan struct{})
	go s.run(ctx, ticks, done)

	scheduler.Start()
	chflow.TrySend(ticks, struct{}{})

	s.closeFunc = func() {
		<-scheduler.Stop().Done()
		cancel()
		<-done
	}
	s.isStarted = true

	logger.Info(ctx, "activity follower started", "schedule", s.schedule)
	return nil
}

func (s *service) run(ctx context.Context, ticks <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	for {
		if _, ok := chflow.Receive(ctx, ticks); !ok {
			return
		}

		if err := s.Follow(ctx); err != nil && ctx.Err() == nil {
			logger.Error(ctx, "follow run failed", "error", err)
		}
	}
}

func (s *service) Follow(ctx context.Context) error {
	cursor, err := s.loadCursor(ctx)
	if err != nil {
		return fmt.Errorf("load checkpoint: %w", err)
	}

	for {
		report, err := s.scan(ctx, cursor)
		if err != nil {
			return err
		}

		if report.ToBlock == uint64(cursor) {
			if report.HasMore {
				logger.Warn(ctx, "scan made no progress", "cursor", cursor, "head", report.Head)
			}
			return nil
		}

		if err := s.reportSink.PublishReport(ctx, s.network, report); err != nil {
			return fmt.Errorf("publish report: %w", err)
		}

		if err := s.checkpointStorage.SaveCheckpoint(ctx, s.network, report.ToBlock); err != nil {
			return fmt.Errorf("save checkpoint: %w", err)
		}

		logger.Debug(ctx, "report published",
			"report.from_block", report.FromBlock,
			"report.to_block", report.ToBlock,
			"report.has_more", report.HasMore,
		)

		if !report.HasMore {
			return nil
		}
		cursor = int64(report.ToBlock)
	}
}

// scan runs one scan after cursor under the scan timeout. Failed scans are
// retried as a whole.
func (s *service) scan(ctx context.Context, cursor int64) (activityscan.Report, error) {
	var report activityscan.Report

	err := s.retry.Execute(ctx, func() error {
		scanCtx, cancel := clockwork.WithTimeout(ctx, s.clock, s.scanTimeout)
		defer cancel()

		var err error
		report, err = s.scanner.Scan(scanCtx, activityscan.Request{StartBlock: cursor})
		if err != nil {
			logger.Warn(ctx, "scan failed", "cursor", cursor, "error", err)
		}
		return err
	})
	if err != nil {
		return activityscan.Report{}, fmt.Errorf("scan after block %d: %w", cursor, err)
	}

	return report, nil
}

func (s *service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closeFunc != nil {
		s.closeFunc()
	}
	s.isStarted = false
	s.closeFunc = nil
}

// retryable excludes failures that repeating the same request cannot fix.
func retryable(err error) bool {
	return !activityscan.IsClientError(err) && !errors.Is(err, context.Canceled)
}

type config struct {
	startBlock        int64
	schedule          string
	scanTimeout       time.Duration
	checkpointStorage CheckpointStorage
	reportSink        ReportSink
	retry             retry.Retry
	clock             clockwork.Clock
}

type Option func(*config)

func New(scanner activityscan.Service, network string, opts ...Option) *service {
	cfg := config{
		schedule:          defaultSchedule,
		scanTimeout:       defaultScanTimeout,
		checkpointStorage: newMemoryCheckpoint(),
		reportSink:        logSink{},
		retry:             retry.New(retry.WithRetryIf(retryable)),
		clock:             clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		scanner:           scanner,
		network:           network,
		startBlock:        cfg.startBlock,
		schedule:          cfg.schedule,
		scanTimeout:       cfg.scanTimeout,
		checkpointStorage: cfg.checkpointStorage,
		reportSink:        cfg.reportSink,
		retry:             cfg.retry,
		clock:             cfg.clock,
	}
}

// WithStartBlock sets the cursor used when the network has no checkpoint yet.
func WithStartBlock(block int64) Option {
	return func(c *config) {
		c.startBlock = block
	}
}

// WithSchedule sets the cron spec of the follower. Descriptors such as
// "@every 1m" are accepted.
func WithSchedule(spec string) Option {
	return func(c *config) {
		c.schedule = spec
	}
}

func WithScanTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.scanTimeout = d
		}
	}
}

func WithCheckpointStorage(cs CheckpointStorage) Option {
	return func(c *config) {
		c.checkpointStorage = cs
	}
}

func WithReportSink(rs ReportSink) Option {
	return func(c *config) {
		c.reportSink = rs
	}
}

// WithRetry replaces the retry policy of scans. Scans failing with client
// errors should not be retried by r.
func WithRetry(r retry.Retry) Option {
	return func(c *config) {
		c.retry = r
	}
}

func WithClock(clock clockwork.Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}
