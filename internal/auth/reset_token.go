package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/devcampdir/api/internal/constants"
)

// resetTokenBytes is the entropy of a password reset token.
const resetTokenBytes = 32

// GenerateResetToken creates a new password reset token. It returns the
// plaintext token for the email, the SHA-256 fingerprint for storage, and the
// expiry time. The plaintext is never persisted; only its fingerprint is.
func GenerateResetToken() (plain string, hash string, expiresAt time.Time, err error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", time.Time{}, fmt.Errorf("failed to generate reset token: %w", err)
	}

	plain = hex.EncodeToString(buf)
	hash = HashResetToken(plain)
	expiresAt = time.Now().Add(constants.ResetTokenTTL)

	return plain, hash, expiresAt, nil
}

// HashResetToken returns the hex-encoded SHA-256 fingerprint of a plaintext
// reset token. A fast hash is fine here: the token itself is 256 bits of
// fresh randomness, unlike a user-chosen password.
func HashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
