package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gabapcia/validatorwatch/internal/activityfollow"
	"github.com/gabapcia/validatorwatch/internal/activityscan"
	"github.com/gabapcia/validatorwatch/internal/config"
	"github.com/gabapcia/validatorwatch/internal/handlers/cli"
	httphandler "github.com/gabapcia/validatorwatch/internal/handlers/http"
	"github.com/gabapcia/validatorwatch/internal/infra/blockchain/substrate"
	"github.com/gabapcia/validatorwatch/internal/infra/storage/redis"
	"github.com/gabapcia/validatorwatch/internal/pkg/logger"
	"github.com/gabapcia/validatorwatch/internal/pkg/telemetry"
	transporthttp "github.com/gabapcia/validatorwatch/internal/pkg/transport/http"

	"github.com/joho/godotenv"
)

const telemetryShutdownTimeout = 5 * time.Second

func main() {
	// A missing .env is fine: variables may come from the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx := context.Background()

	shutdownTelemetry := telemetry.ShutdownFunc(func(context.Context) error { return nil })
	if cfg.Telemetry.Enabled {
		if shutdownTelemetry, err = telemetry.Init(ctx, cfg.Telemetry.ServiceName); err != nil {
			fmt.Fprintln(os.Stderr, "telemetry:", err)
			os.Exit(1)
		}
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}

	err = run(ctx, cfg)
	if err != nil {
		logger.Error(ctx, "validatorwatch failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, telemetryShutdownTimeout)
	defer cancel()

	if err := shutdownTelemetry(shutdownCtx); err != nil {
		fmt.Fprintln(os.Stderr, "telemetry shutdown:", err)
	}
	_ = logger.Sync()

	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	httpClient := transporthttp.NewStandardClient(
		transporthttp.WithTimeout(cfg.Chain.RequestTimeout),
		transporthttp.WithRetryMax(cfg.Chain.RetryMax),
		transporthttp.WithRetryLogging(),
	)

	connector := substrate.NewConnector(cfg.Chain.Endpoint,
		substrate.WithHTTPClient(httpClient),
		substrate.WithSS58Prefix(cfg.Chain.SS58Prefix),
	)
	defer connector.Close()

	scanOpts := []activityscan.Option{
		activityscan.WithBatchSize(cfg.Scan.BatchSize),
		activityscan.WithMaxWindow(cfg.Scan.MaxWindow),
		activityscan.WithMaxConcurrency(cfg.Scan.MaxConcurrency),
		activityscan.WithBlockTimeout(cfg.Scan.BlockTimeout),
		activityscan.WithDeadlineMargin(cfg.Scan.DeadlineMargin),
	}

	followOpts := []activityfollow.Option{
		activityfollow.WithStartBlock(cfg.Follow.StartBlock),
		activityfollow.WithSchedule(cfg.Follow.Schedule),
		activityfollow.WithScanTimeout(cfg.Follow.ScanTimeout),
	}

	if cfg.Redis.Enabled {
		store, err := redis.NewClient(ctx,
			cfg.Redis.Addr,
			cfg.Redis.Username,
			cfg.Redis.Password,
			cfg.Redis.DB,
			redis.WithKeyOwnerTTL(cfg.Redis.KeyOwnerTTL),
			redis.WithReportStreamLen(cfg.Redis.ReportStreamLen),
		)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer store.Close()

		scanOpts = append(scanOpts, activityscan.WithKeyOwnerCache(store))
		followOpts = append(followOpts,
			activityfollow.WithCheckpointStorage(store),
			activityfollow.WithReportSink(store),
		)
	}

	scanner := activityscan.New(connector, scanOpts...)
	defer scanner.Close()

	follower := activityfollow.New(scanner, cfg.Follow.Network, followOpts...)
	server := httphandler.NewServer(scanner, cfg.HTTP.Addr, httphandler.WithRequestTimeout(cfg.HTTP.RequestTimeout))

	return cli.Run(ctx, scanner, follower, server)
}
