package activityscan

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/gabapcia/validatorwatch/internal/activityscan"

type instruments struct {
	tracer trace.Tracer

	blocksScanned  metric.Int64Counter
	blocksSkipped  metric.Int64Counter
	keysUnresolved metric.Int64Counter
}

// newInstruments uses the global providers, which are no-ops until telemetry is initialised.
func newInstruments() instruments {
	meter := otel.Meter(instrumentationName)

	// Errors only report invalid names; a usable instrument is returned regardless.
	blocksScanned, _ := meter.Int64Counter("activityscan.blocks.scanned",
		metric.WithDescription("Blocks fetched and aggregated"),
		metric.WithUnit("{block}"),
	)
	blocksSkipped, _ := meter.Int64Counter("activityscan.blocks.skipped",
		metric.WithDescription("Blocks that could not be fetched or decoded"),
		metric.WithUnit("{block}"),
	)
	keysUnresolved, _ := meter.Int64Counter("activityscan.keys.unresolved",
		metric.WithDescription("Authority key lookups that failed"),
		metric.WithUnit("{key}"),
	)

	return instruments{
		tracer:         otel.Tracer(instrumentationName),
		blocksScanned:  blocksScanned,
		blocksSkipped:  blocksSkipped,
		keysUnresolved: keysUnresolved,
	}
}
