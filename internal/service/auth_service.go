// Package service implements the business logic of the bootcamp directory:
// authentication and password reset, account administration, and email
// notifications. Services depend on repository interfaces and return
// AppErrors that handlers render directly.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/devcampdir/api/internal/auth"
	"github.com/devcampdir/api/internal/constants"
	"github.com/devcampdir/api/internal/models"
	"github.com/devcampdir/api/internal/repository"
	"github.com/devcampdir/api/internal/utils"
)

// AuthService handles registration, login, and the password reset flow.
type AuthService struct {
	userRepo    repository.UserRepository
	jwtService  *auth.JWTService
	passwordCfg *auth.PasswordConfig
	mailer      Mailer
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	passwordCfg *auth.PasswordConfig,
	mailer Mailer,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		jwtService:  jwtService,
		passwordCfg: passwordCfg,
		mailer:      mailer,
	}
}

// Register creates a new user account and returns the sanitized user.
func (s *AuthService) Register(ctx context.Context, reg *models.RegisterRequest) (*models.User, error) {
	if reg.Password != reg.PasswordConfirm {
		return nil, utils.NewValidationError("passwordConfirm", "Passwords do not match")
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, reg.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, utils.NewDuplicateError("User", "email", reg.Email)
	}

	passwordHash, salt, err := auth.HashPassword(reg.Password, s.passwordCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(reg.Name, reg.Email, reg.Role)
	user.PasswordHash = passwordHash
	user.Salt = salt

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	utils.LogAuth("register_success", fmt.Sprintf("%d", user.ID), user.Email, true, "")

	return user.Sanitize(), nil
}

// Login verifies credentials and returns the user. Unknown email and wrong
// password produce the identical invalid-credentials error.
func (s *AuthService) Login(ctx context.Context, creds *models.LoginRequest) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, creds.Email)
	if err != nil {
		if utils.IsNotFoundError(err) {
			utils.LogAuth("login_failed", "0", creds.Email, false, "user not found")
			return nil, utils.NewInvalidCredentialsError()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	match, err := auth.VerifyPassword(creds.Password, user.PasswordHash, user.Salt, s.passwordCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	if !match {
		utils.LogAuth("login_failed", fmt.Sprintf("%d", user.ID), user.Email, false, "invalid password")
		return nil, utils.NewInvalidCredentialsError()
	}

	utils.LogAuth("login_success", fmt.Sprintf("%d", user.ID), user.Email, true, "")

	return user.Sanitize(), nil
}

// IssueToken generates a session token for a user.
func (s *AuthService) IssueToken(user *models.User) (string, time.Time, error) {
	return s.jwtService.IssueSessionToken(user)
}

// GetUser retrieves a user by ID with credentials stripped.
func (s *AuthService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Sanitize(), nil
}

// ForgotPassword generates a reset token for the account with the given
// email, stores its fingerprint, and emails the plaintext reset URL.
// If the email cannot be sent, the stored reset state is cleared and an
// internal error is returned.
func (s *AuthService) ForgotPassword(ctx context.Context, email, urlBase string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if utils.IsNotFoundError(err) {
			return utils.New(utils.ErrNotFound, constants.StatusNotFound, constants.MsgNoUserForEmail)
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if s.mailer == nil {
		return utils.New(utils.ErrInternalServer, constants.StatusInternalServerError, constants.MsgResetEmailFailed)
	}

	plain, hash, expiresAt, err := auth.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	if err := s.userRepo.SetResetToken(ctx, user.ID, hash, expiresAt); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s%s%s/resetPassword/%s", urlBase, constants.APIBasePath, constants.AuthBasePath, plain)

	if err := s.mailer.SendPasswordResetEmail(user.Email, user.Name, resetURL); err != nil {
		// Best-effort rollback: an unreachable token must not linger
		if clearErr := s.userRepo.ClearResetToken(ctx, user.ID); clearErr != nil {
			log.Error().Err(clearErr).Int64("user_id", user.ID).Msg("Failed to clear reset token after email failure")
		}
		return utils.New(utils.ErrInternalServer, constants.StatusInternalServerError, constants.MsgResetEmailFailed)
	}

	log.Info().Int64("user_id", user.ID).Msg("Password reset email dispatched")

	return nil
}

// ResetPassword consumes a reset token: if the fingerprint matches an
// unexpired token, the password is replaced and the reset state cleared.
// Wrong, expired, and already-consumed tokens all produce the same error.
func (s *AuthService) ResetPassword(ctx context.Context, plainToken string, req *models.ResetPasswordRequest) (*models.User, error) {
	if req.Password != req.PasswordConfirm {
		return nil, utils.NewValidationError("passwordConfirm", "Passwords do not match")
	}

	hash := auth.HashResetToken(plainToken)

	user, err := s.userRepo.GetByResetTokenHash(ctx, hash, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrResetTokenNotFound) {
			return nil, utils.NewBadRequestError(constants.MsgInvalidResetToken)
		}
		return nil, fmt.Errorf("failed to look up reset token: %w", err)
	}

	passwordHash, salt, err := auth.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.ChangePassword(ctx, user.ID, passwordHash, salt); err != nil {
		return nil, err
	}

	if err := s.userRepo.ClearResetToken(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to clear reset token: %w", err)
	}

	utils.LogAuth("password_reset", fmt.Sprintf("%d", user.ID), user.Email, true, "")

	return user.Sanitize(), nil
}

// UpdateProfile changes a user's name and/or email. Password changes are
// rejected here and directed to UpdatePassword.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, update *models.ProfileUpdate) (*models.User, error) {
	if update.ContainsPassword() {
		return nil, utils.NewBadRequestError(constants.MsgPasswordRouteMisuse)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	if update.Email != "" {
		user.Email = update.Email
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.Sanitize(), nil
}

// UpdatePassword changes a user's password after verifying the current one.
// A wrong current password is an authentication failure, not a validation
// failure.
func (s *AuthService) UpdatePassword(ctx context.Context, userID int64, req *models.PasswordUpdateRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	match, err := auth.VerifyPassword(req.CurrentPassword, user.PasswordHash, user.Salt, s.passwordCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	if !match {
		utils.LogAuth("password_update_failed", fmt.Sprintf("%d", user.ID), user.Email, false, "current password mismatch")
		return nil, utils.NewUnauthorizedError(constants.MsgWrongCurrentPassword)
	}

	passwordHash, salt, err := auth.HashPassword(req.NewPassword, s.passwordCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.ChangePassword(ctx, user.ID, passwordHash, salt); err != nil {
		return nil, err
	}

	utils.LogAuth("password_updated", fmt.Sprintf("%d", user.ID), user.Email, true, "")

	return user.Sanitize(), nil
}
