// Package models defines the domain entities of the bootcamp directory and
// the typed request schemas used to create and update them. Entities carry
// `db` tags matching their column names and `json` tags matching the wire
// format; credential fields are never serialized.
package models

import (
	"time"
)

// User represents a registered account in the directory.
// Password material and reset-token state are stored on the user record and
// excluded from every JSON response.
type User struct {
	ID                int64      `json:"id" db:"user_id"`
	Name              string     `json:"name" db:"name" validate:"required,min=2,max=100"`
	Email             string     `json:"email" db:"email" validate:"required,email"`
	Role              string     `json:"role" db:"role" validate:"omitempty,oneof=user publisher admin"`
	PasswordHash      string     `json:"-" db:"password_hash"`
	Salt              string     `json:"-" db:"salt"`
	PasswordChangedAt time.Time  `json:"-" db:"password_changed_at"`
	ResetTokenHash    *string    `json:"-" db:"reset_token_hash"`
	ResetTokenExpires *time.Time `json:"-" db:"reset_token_expires_at"`
	CreatedAt         time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time  `json:"updatedAt" db:"updated_at"`
}

// NewUser creates a new User with the given name and email.
// Password fields are populated later during registration.
func NewUser(name, email, role string) *User {
	if role == "" {
		role = "user"
	}
	now := time.Now()
	return &User{
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TableName returns the database table name for the User model.
func (u *User) TableName() string {
	return "users"
}

// Sanitize removes sensitive information from the User object when sending to
// clients.
func (u *User) Sanitize() *User {
	sanitized := *u
	sanitized.PasswordHash = ""
	sanitized.Salt = ""
	sanitized.ResetTokenHash = nil
	sanitized.ResetTokenExpires = nil
	return &sanitized
}

// HasActiveResetToken reports whether a reset token is set and unexpired at
// the given instant.
func (u *User) HasActiveResetToken(now time.Time) bool {
	return u.ResetTokenHash != nil && u.ResetTokenExpires != nil && u.ResetTokenExpires.After(now)
}

// RegisterRequest represents the data required for user registration.
// Role may only be user or publisher; admin accounts cannot self-register.
type RegisterRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
	Role            string `json:"role" validate:"omitempty,oneof=user publisher"`
}

// LoginRequest represents the login credentials provided by a user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest carries the email to send a reset token to.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest carries the replacement password for a reset.
type ResetPasswordRequest struct {
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// ProfileUpdate represents the fields a user may change about themselves.
// The password fields exist only so their presence can be detected and
// rejected with a pointer to the password route.
type ProfileUpdate struct {
	Name            string `json:"name" validate:"omitempty,min=2,max=100"`
	Email           string `json:"email" validate:"omitempty,email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// ContainsPassword reports whether the update tried to change the password.
func (p *ProfileUpdate) ContainsPassword() bool {
	return p.Password != "" || p.PasswordConfirm != ""
}

// PasswordUpdateRequest represents a password change for a logged-in user.
type PasswordUpdateRequest struct {
	CurrentPassword    string `json:"currentPassword" validate:"required"`
	NewPassword        string `json:"newPassword" validate:"required,min=6"`
	NewPasswordConfirm string `json:"newPasswordConfirm" validate:"required,eqfield=NewPassword"`
}

// UserCreate represents the data an administrator supplies to create a user.
type UserCreate struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user publisher admin"`
}

// UserUpdate represents the data an administrator may update for a user.
type UserUpdate struct {
	Name  string `json:"name" validate:"omitempty,min=2,max=100"`
	Email string `json:"email" validate:"omitempty,email"`
	Role  string `json:"role" validate:"omitempty,oneof=user publisher admin"`
}
