package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devcampdir/api/internal/config"
	"github.com/devcampdir/api/internal/models"
	"github.com/devcampdir/api/internal/utils"
)

func testJWTService() *JWTService {
	return NewJWTService(&config.JWTSettings{
		Secret:     "test-secret",
		ExpireDays: 30,
		Issuer:     "campdir-api",
	})
}

func testUser() *models.User {
	return &models.User{
		ID:    7,
		Name:  "Jamie Doe",
		Email: "jamie@example.com",
		Role:  "publisher",
	}
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc := testJWTService()

	tokenString, expiresAt, err := svc.IssueSessionToken(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.False(t, expiresAt.IsZero())

	claims, err := svc.ValidateToken(tokenString)
	require.NoError(t, err)

	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "Jamie Doe", claims.Name)
	assert.Equal(t, "jamie@example.com", claims.Email)
	assert.Equal(t, "publisher", claims.Role)
	assert.Equal(t, "campdir-api", claims.Issuer)
	assert.Equal(t, "7", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	tokenString, _, err := testJWTService().IssueSessionToken(testUser())
	require.NoError(t, err)

	other := NewJWTService(&config.JWTSettings{
		Secret:     "different-secret",
		ExpireDays: 30,
		Issuer:     "campdir-api",
	})

	claims, err := other.ValidateToken(tokenString)
	assert.Nil(t, claims)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, utils.StatusCode(err))
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	svc := NewJWTService(&config.JWTSettings{
		Secret:     "test-secret",
		ExpireDays: -1,
		Issuer:     "campdir-api",
	})

	tokenString, _, err := svc.IssueSessionToken(testUser())
	require.NoError(t, err)

	claims, err := svc.ValidateToken(tokenString)
	assert.Nil(t, claims)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, utils.StatusCode(err))
}

func TestJWTService_ValidateToken_Garbage(t *testing.T) {
	claims, err := testJWTService().ValidateToken("not.a.token")
	assert.Nil(t, claims)
	assert.Error(t, err)
}
