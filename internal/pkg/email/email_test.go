package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerificationURLUsesPathSegment(t *testing.T) {
	svc := &EmailServiceImpl{config: SMTPConfig{BaseURL: "https://app.example.com"}}

	url := svc.verificationURL("abc123")

	assert.Equal(t, "https://app.example.com/api/v1/auth/verify-email/abc123", url)
}
