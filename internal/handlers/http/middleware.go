package http

import (
	"net/http"
	"time"

	"github.com/gabapcia/validatorwatch/internal/pkg/logger"

	"github.com/google/uuid"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withRequestLogging tags the request context with a request id and logs
// every completed request.
func withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := logger.Derive(r.Context(),
			"request_id", uuid.NewString(),
			"http.method", r.Method,
			"http.path", r.URL.Path,
		)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		logger.Debug(ctx, "request completed",
			"http.status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
