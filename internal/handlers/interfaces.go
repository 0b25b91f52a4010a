// Package handlers provides the HTTP request handlers of the bootcamp
// directory API. Handlers depend on service and repository interfaces so
// tests can substitute function-field mocks.
package handlers

import (
	"context"
	"time"

	"github.com/devcampdir/api/internal/models"
)

// AuthServiceInterface defines the methods required from AuthService.
type AuthServiceInterface interface {
	// Register creates a new account and returns the sanitized user.
	Register(ctx context.Context, reg *models.RegisterRequest) (*models.User, error)

	// Login verifies credentials. Unknown email and wrong password return
	// the identical error.
	Login(ctx context.Context, creds *models.LoginRequest) (*models.User, error)

	// IssueToken generates a session token and its expiry for a user.
	IssueToken(user *models.User) (string, time.Time, error)

	// GetUser retrieves a user by ID with credentials stripped.
	GetUser(ctx context.Context, id int64) (*models.User, error)

	// ForgotPassword stores a reset-token fingerprint and emails the
	// plaintext reset URL built from urlBase.
	ForgotPassword(ctx context.Context, email, urlBase string) error

	// ResetPassword consumes a reset token and replaces the password.
	ResetPassword(ctx context.Context, plainToken string, req *models.ResetPasswordRequest) (*models.User, error)

	// UpdateProfile changes name/email; password fields are rejected.
	UpdateProfile(ctx context.Context, userID int64, update *models.ProfileUpdate) (*models.User, error)

	// UpdatePassword changes the password after verifying the current one.
	UpdatePassword(ctx context.Context, userID int64, req *models.PasswordUpdateRequest) (*models.User, error)
}

// UserServiceInterface defines the methods required from UserService.
type UserServiceInterface interface {
	List(ctx context.Context, limit, offset int) ([]*models.User, int, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, req *models.UserCreate) (*models.User, error)
	Update(ctx context.Context, id int64, req *models.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}
