package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gabapcia/validatorwatch/internal/activityfollow"
	"github.com/gabapcia/validatorwatch/internal/activityscan"

	"github.com/redis/go-redis/v9"
)

const reportStreamKeyPrefix = "activity"

// reportStreamKey is "activity:reports:<network>".
func reportStreamKey(network string) string {
	return fmt.Sprintf("%s:reports:%s", reportStreamKeyPrefix, network)
}

// PublishReport appends report to the network's stream. Each entry carries
// the block range as separate fields next to the JSON encoded report, and
// the stream is trimmed to about reportStreamLen entries.
func (c *client) PublishReport(ctx context.Context, network string, report activityscan.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	return c.conn.XAdd(ctx, &redis.XAddArgs{
		Stream: reportStreamKey(network),
		MaxLen: c.reportStreamLen,
		Approx: true,
		Values: map[string]any{
			"fromBlock": report.FromBlock,
			"toBlock":   report.ToBlock,
			"report":    payload,
		},
	}).Err()
}

var _ activityfollow.ReportSink = new(client)
