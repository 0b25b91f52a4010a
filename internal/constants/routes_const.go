package constants

// Base Routes
const (
	APIBasePath = "/api/v1"
	HealthPath  = "/health"
)

// Authentication Routes, relative to APIBasePath.
const (
	AuthBasePath           = "/auth"
	AuthRegisterPath       = "/register"
	AuthLoginPath          = "/login"
	AuthLogoutPath         = "/logout"
	AuthForgotPasswordPath = "/forgotPassword"
	AuthResetPasswordPath  = "/resetPassword/{resetToken}"
	AuthMePath             = "/me"
	AuthUpdateMePath       = "/updateMe"
	AuthUpdatePasswordPath = "/updatePassword"
)

// URL Parameters
const (
	ParamID         = "id"
	ParamResetToken = "resetToken"
)

// Query Parameters
const (
	QueryParamPage     = "page"
	QueryParamPageSize = "page_size"
)

// Context Key Names
const (
	UserIDContextKey    = "user_id"
	UserNameContextKey  = "user_name"
	UserEmailContextKey = "user_email"
	UserRoleContextKey  = "user_role"
	RequestIDContextKey = "request_id"
)
