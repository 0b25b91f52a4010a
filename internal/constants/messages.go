// Package constants provides shared constant values used throughout the application.
//
// The messages.go file defines user-facing error and status messages. These are
// carefully worded so that authentication failures never reveal whether an
// account exists or which part of a credential was wrong.
package constants

// Authentication Messages
const (
	// MsgAuthRequired indicates that the user must authenticate to access the resource.
	MsgAuthRequired = "Authentication required"

	// MsgInvalidCredentials is the single message used for both unknown email
	// and wrong password, to resist account enumeration.
	MsgInvalidCredentials = "Invalid email or password"

	// MsgMissingCredentials indicates that email or password was not supplied.
	MsgMissingCredentials = "Please provide an email and password"

	// MsgInvalidResetToken is the uniform message for wrong, expired, or
	// already-consumed reset tokens. The three cases are deliberately
	// indistinguishable.
	MsgInvalidResetToken = "Token is invalid or has expired"

	// MsgNoUserForEmail indicates that no account exists for the given email.
	MsgNoUserForEmail = "There is no user for this email address"

	// MsgResetEmailSent confirms that a reset token email was dispatched.
	MsgResetEmailSent = "Token sent to your email"

	// MsgResetEmailFailed indicates that the reset email could not be delivered.
	MsgResetEmailFailed = "There was an error sending the email. Try again later"

	// MsgWrongCurrentPassword indicates the supplied current password did not match.
	MsgWrongCurrentPassword = "Your current password is incorrect"

	// MsgPasswordRouteMisuse redirects password changes away from the profile route.
	MsgPasswordRouteMisuse = "This route is not for password updates. Use /api/v1/auth/updatePassword"

	// MsgAccessDenied indicates the authenticated user lacks the required role.
	MsgAccessDenied = "You don't have permission to perform this action"
)

// General Messages
const (
	// MsgResourceNotFound is the generic not-found message.
	MsgResourceNotFound = "Resource not found"

	// MsgRouteNotFound is returned for unmatched routes.
	MsgRouteNotFound = "Route not found on this server"

	// MsgMethodNotAllowed is returned for unsupported HTTP methods.
	MsgMethodNotAllowed = "Method not allowed"

	// MsgInternalServerError is the generic internal error message.
	MsgInternalServerError = "An internal server error occurred"

	// MsgRateLimited is returned when a client exceeds its request budget.
	MsgRateLimited = "Too many requests, please try again later"

	// MsgEmptyRequestBody indicates the request body was empty.
	MsgEmptyRequestBody = "Request body must not be empty"

	// MsgMalformedJSON indicates the request body contained invalid JSON.
	MsgMalformedJSON = "Request body contains malformed JSON"

	// MsgRequestBodyTooLarge indicates the request body exceeded the size limit.
	MsgRequestBodyTooLarge = "Request body is too large"
)

// Log Values
const (
	// LogRedactedValue replaces sensitive values in logs.
	LogRedactedValue = "[REDACTED]"
)
