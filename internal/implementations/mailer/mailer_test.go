package mailer

import (
	"passwordreset/internal/core/domain/account"
	c "passwordreset/internal/core/domain/common"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/require"
)

func newTestMailer() *SesMailer {
	return NewSesMailer(
		aws.Config{},
		"Admin",
		"admin@realdomain.com",
		"https://chat.realdomain.com/passwordreset/",
		"Password reset for ${userId}",
		"Dear ${userName}\n\nGo to ${url} to reset the password for ${userEmail}.",
	)
}

func TestSubstitutesPlaceholders(t *testing.T) {
	assert := require.New(t)
	m := newTestMailer()
	a := account.Account{
		Username: "test-username",
		Name:     "Test User",
		Email:    c.NewOptional(c.NewEmail("test@realdomain.com"), true),
	}

	resetURL := m.resetURL("test-token")
	assert.Equal("https://chat.realdomain.com/passwordreset/change-password?token=test-token", resetURL)

	subject := m.substitute(m.subjectTemplate, a, resetURL)
	assert.Equal("Password reset for test-username", subject)

	body := m.substitute(m.bodyTemplate, a, resetURL)
	assert.Equal(
		"Dear Test User\n\n"+
			"Go to https://chat.realdomain.com/passwordreset/change-password?token=test-token"+
			" to reset the password for test@realdomain.com.",
		body,
	)
}

func TestResetURLEscapesToken(t *testing.T) {
	m := newTestMailer()
	require.Equal(
		t,
		"https://chat.realdomain.com/passwordreset/change-password?token=a%2Bb%2Fc",
		m.resetURL("a+b/c"),
	)
}
