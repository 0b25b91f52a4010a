package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devcampdir/api/internal/config"
)

func TestNewEmailService(t *testing.T) {
	svc, err := NewEmailService(&config.EmailSettings{
		SendGridAPIKey: "SG.test-key",
		FromAddress:    "noreply@campdir.dev",
		FromName:       "CampDir Support",
	})

	require.NoError(t, err)
	assert.Equal(t, "noreply@campdir.dev", svc.fromAddress)
	assert.Equal(t, "CampDir Support", svc.fromName)
}

func TestNewEmailService_MissingAPIKey(t *testing.T) {
	_, err := NewEmailService(&config.EmailSettings{
		FromAddress: "noreply@campdir.dev",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sendgrid API key")
}
