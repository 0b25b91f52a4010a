// Package auth provides session tokens, password hashing, reset-token
// fingerprints, and the authentication middleware for the bootcamp directory
// API.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/devcampdir/api/internal/constants"
	"github.com/devcampdir/api/internal/utils"
)

// ContextKey is a custom type for context keys to prevent collisions.
type ContextKey string

// Context keys for storing authenticated user information.
const (
	UserIDContextKey    ContextKey = constants.UserIDContextKey
	UserNameContextKey  ContextKey = constants.UserNameContextKey
	UserEmailContextKey ContextKey = constants.UserEmailContextKey
	UserRoleContextKey  ContextKey = constants.UserRoleContextKey
)

// TokenValidator validates a session token string and returns its claims.
// JWTService satisfies this; tests substitute their own.
type TokenValidator interface {
	ValidateToken(tokenString string) (*SessionClaims, error)
}

// ExtractToken pulls the session token out of a request, preferring the
// Authorization header and falling back to the session cookie.
func ExtractToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get(constants.HeaderAuthorization)
	if authHeader != "" {
		if !strings.HasPrefix(authHeader, constants.BearerTokenPrefix) {
			return "", utils.ErrUnauthorized
		}
		return strings.TrimPrefix(authHeader, constants.BearerTokenPrefix), nil
	}

	cookie, err := r.Cookie(constants.AuthTokenCookie)
	if err != nil || cookie.Value == "" || cookie.Value == "none" {
		return "", utils.ErrUnauthorized
	}
	return cookie.Value, nil
}

// RequireAuth is a middleware that requires a valid session token. On success
// the user's id, name, email, and role are placed in the request context.
func RequireAuth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := ExtractToken(r)
			if err != nil {
				utils.Error(w, constants.StatusUnauthorized, constants.MsgAuthRequired)
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				log.Info().
					Err(err).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("Authentication failed")

				var appErr *utils.AppError
				if errors.As(err, &appErr) {
					utils.ErrorFromAppError(w, appErr)
				} else {
					utils.Error(w, constants.StatusUnauthorized, constants.MsgAuthRequired)
				}
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, UserIDContextKey, claims.UserID)
			ctx = context.WithValue(ctx, UserNameContextKey, claims.Name)
			ctx = context.WithValue(ctx, UserEmailContextKey, claims.Email)
			ctx = context.WithValue(ctx, UserRoleContextKey, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole is a middleware that requires the authenticated user to hold
// one of the given roles. It must run after RequireAuth.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetUserRole(r)
			if !ok {
				utils.Error(w, constants.StatusUnauthorized, constants.MsgAuthRequired)
				return
			}

			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Info().
				Str("role", role).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("Role check failed")

			utils.Error(w, constants.StatusForbidden, constants.MsgAccessDenied)
		})
	}
}

// GetUserID extracts the authenticated user's ID from the request context.
func GetUserID(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value(UserIDContextKey).(int64)
	return userID, ok
}

// GetUserName extracts the authenticated user's name from the request context.
func GetUserName(r *http.Request) (string, bool) {
	name, ok := r.Context().Value(UserNameContextKey).(string)
	return name, ok
}

// GetUserEmail extracts the authenticated user's email from the request context.
func GetUserEmail(r *http.Request) (string, bool) {
	email, ok := r.Context().Value(UserEmailContextKey).(string)
	return email, ok
}

// GetUserRole extracts the authenticated user's role from the request context.
func GetUserRole(r *http.Request) (string, bool) {
	role, ok := r.Context().Value(UserRoleContextKey).(string)
	return role, ok
}

// IsAuthenticated checks if the request carries an authenticated user.
func IsAuthenticated(r *http.Request) bool {
	_, ok := GetUserID(r)
	return ok
}
