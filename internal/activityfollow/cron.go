package activityfollow

import (
	"context"

	"github.com/gabapcia/validatorwatch/internal/pkg/logger"
)

// cronLogger routes scheduler logs to the application logger.
type cronLogger struct {
	ctx context.Context
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	logger.Debug(l.ctx, "cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	logger.Error(l.ctx, "cron: "+msg, append(keysAndValues, "error", err)...)
}
