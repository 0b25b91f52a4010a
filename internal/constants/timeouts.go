package constants

import "time"

// Server Timeouts
const (
	DefaultReadTimeout     = 5 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
)

// Database Timeouts
const (
	DBConnectionTimeout  = 10 * time.Second
	DBHealthCheckTimeout = 5 * time.Second
	DBConnMaxLifetime    = 1 * time.Hour
	DBConnMaxIdleTime    = 30 * time.Minute
)

// Authentication Durations
const (
	// ResetTokenTTL is how long a password reset token stays valid.
	ResetTokenTTL = 10 * time.Minute

	// LogoutCookieTTL is how long the neutralized logout cookie lives.
	// The original behavior expires the "none" cookie almost immediately.
	LogoutCookieTTL = 10 * time.Second
)

// Rate Limiter Housekeeping
const (
	RateLimitCleanupInterval = 10 * time.Minute
)
