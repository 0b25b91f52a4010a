package middleware

import (
	"net/http"
	"time"

	"github.com/devcampdir/api/internal/utils"
)

// statusRecorder captures the response status code for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

// RequestLogger logs each completed request with its latency and
// status. When disabled it passes requests straight through.
func RequestLogger(enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			utils.LogHTTPRequest(
				GetRequestID(r),
				r.Method,
				r.URL.Path,
				GetClientIP(r),
				r.UserAgent(),
				recorder.status,
				time.Since(start),
			)
		})
	}
}
