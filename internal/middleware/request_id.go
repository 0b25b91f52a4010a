// Package middleware provides the HTTP middleware chain of the API:
// request identification, panic recovery, security headers, CORS,
// request logging and rate limiting.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/devcampdir/api/internal/constants"
)

type contextKey string

const requestIDKey = contextKey(constants.RequestIDContextKey)

// RequestID assigns each request a unique identifier, stored in the
// request context and echoed in the X-Request-ID response header. An
// identifier supplied by the client is kept so callers can correlate
// their own logs with ours.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(constants.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}

			w.Header().Set(constants.HeaderXRequestID, requestID)

			ctx := context.WithValue(r.Context(), requestIDKey, requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetRequestID returns the request identifier assigned by RequestID,
// or an empty string when the middleware did not run.
func GetRequestID(r *http.Request) string {
	if id, ok := r.Context().Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
