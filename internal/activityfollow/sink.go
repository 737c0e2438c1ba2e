package activityfollow

import (
	"context"

	"github.com/gabapcia/validatorwatch/internal/activityscan"
	"github.com/gabapcia/validatorwatch/internal/pkg/logger"
)

// ReportSink receives every report the follower produces, in block order.
// A report is published before its ToBlock becomes the checkpoint, so after
// a crash the same range may be published twice.
type ReportSink interface {
	PublishReport(ctx context.Context, network string, report activityscan.Report) error
}

// logSink writes a summary of each report to the log.
type logSink struct{}

func (logSink) PublishReport(ctx context.Context, network string, report activityscan.Report) error {
	logger.Info(ctx, "activity report",
		"network", network,
		"report.from_block", report.FromBlock,
		"report.to_block", report.ToBlock,
		"report.head", report.Head,
		"report.validators", len(report.Validators),
		"report.skipped", len(report.Skipped),
	)
	return nil
}
