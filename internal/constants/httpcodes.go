// Package constants provides shared constant values used throughout the application.
//
// The httpcodes.go file defines HTTP-related constants such as status codes,
// headers, and content types. The security header values implement recommended
// web security practices.
package constants

// HTTP Status Codes define the standard HTTP response status codes used in the application.
const (
	StatusOK                  = 200
	StatusCreated             = 201
	StatusNoContent           = 204
	StatusBadRequest          = 400
	StatusUnauthorized        = 401
	StatusForbidden           = 403
	StatusNotFound            = 404
	StatusMethodNotAllowed    = 405
	StatusTooManyRequests     = 429
	StatusInternalServerError = 500
)

// HTTP Headers define header names used by the application.
const (
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderRetryAfter    = "Retry-After"
	HeaderXRequestID    = "X-Request-ID"

	HeaderXContentTypeOptions     = "X-Content-Type-Options"
	HeaderXFrameOptions           = "X-Frame-Options"
	HeaderXXSSProtection          = "X-XSS-Protection"
	HeaderReferrerPolicy          = "Referrer-Policy"
	HeaderContentSecurityPolicy   = "Content-Security-Policy"
	HeaderAccessControlAllowCreds = "Access-Control-Allow-Credentials"
)

// Header Values define the canonical values for the headers above.
const (
	ContentTypeJSON            = "application/json"
	ContentTypeOptionsNoSniff  = "nosniff"
	FrameOptionsDeny           = "DENY"
	XSSProtectionModeBlock     = "1; mode=block"
	ReferrerPolicyStrictOrigin = "strict-origin-when-cross-origin"
	CSPDefaultSrc              = "default-src 'self'"
)

// Authentication Transport
const (
	// AuthTokenCookie is the name of the cookie carrying the session token.
	AuthTokenCookie = "token"

	// BearerTokenPrefix is the prefix for Authorization header tokens.
	BearerTokenPrefix = "Bearer "
)
