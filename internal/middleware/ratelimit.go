package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/devcampdir/api/internal/constants"
	"github.com/devcampdir/api/internal/utils"
	"github.com/devcampdir/api/internal/utils/ratelimit"
)

// RateLimit throttles requests per client IP using the given store.
// The category selects the rate configured for the route group, for
// example "auth" on credential endpoints.
func RateLimit(store *ratelimit.Store, category string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isExemptPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := GetClientIP(r)
			if !store.Allow(clientIP, category) {
				log.Warn().
					Str("client_ip", clientIP).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("category", category).
					Msg("Rate limit exceeded")

				w.Header().Set(constants.HeaderRetryAfter, "60")
				utils.Error(w, http.StatusTooManyRequests, constants.MsgRateLimited)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isExemptPath(path string) bool {
	return strings.HasPrefix(path, constants.HealthPath)
}
