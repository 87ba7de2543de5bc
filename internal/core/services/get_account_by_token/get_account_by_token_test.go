package getaccountbytoken

import (
	"context"
	"passwordreset/internal/core/domain/account"
	c "passwordreset/internal/core/domain/common"
	"passwordreset/internal/core/domain/logging"
	"passwordreset/internal/core/domain/token"
	"passwordreset/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const TOKEN = token.Token("valid-reset-token")
const SOURCE_ADDRESS = "203.0.113.5"

var NOW = time.Date(2023, 6, 15, 12, 30, 0, 0, time.UTC)

type suite struct {
	log         *logging.FakeLogger
	accountRepo *account.FakeAccountRepository
	tokenRepo   *token.FakeTokenRepository
}

func setupSuite(t *testing.T) *suite {
	s := &suite{
		log: logging.NewFakeLogger(),
		accountRepo: account.NewFakeAccountRepository(
			account.Account{
				Username: "alice",
				Name:     "Alice",
				Email:    c.NewOptional(c.NewEmail("alice@realdomain.com"), true),
			},
		),
		tokenRepo: token.NewFakeTokenRepository(),
	}
	err := s.tokenRepo.Create(context.Background(), token.CreateTokenInput{
		Token:         TOKEN,
		Username:      "alice",
		SourceAddress: SOURCE_ADDRESS,
		ExpiresAt:     NOW.Add(time.Hour),
	})
	require.NoError(t, err)
	return s
}

func (s *suite) createService() services.Service[Input, Result] {
	return New(s.log, s.accountRepo, s.tokenRepo, func() time.Time { return NOW })
}

func TestResolvesAccount(t *testing.T) {
	// Setup ---
	suite := setupSuite(t)
	service := suite.createService()

	// Exercise ---
	result, err := service.Run(context.Background(), Input{Token: TOKEN})

	// Verify ---
	require.NoError(t, err)
	require.True(t, result.Account.IsPresent)
	require.Equal(t, account.Username("alice"), result.Account.Value.Username)
}

func TestUnknownToken(t *testing.T) {
	// Setup ---
	suite := setupSuite(t)
	service := suite.createService()

	// Exercise ---
	result, err := service.Run(context.Background(), Input{Token: "no-such-token"})

	// Verify ---
	require.NoError(t, err)
	require.False(t, result.Account.IsPresent)
}

func TestExpiredToken(t *testing.T) {
	// Setup ---
	suite := setupSuite(t)
	err := suite.tokenRepo.Create(context.Background(), token.CreateTokenInput{
		Token:         "expired-reset-token",
		Username:      "alice",
		SourceAddress: SOURCE_ADDRESS,
		ExpiresAt:     NOW.Add(-time.Minute),
	})
	require.NoError(t, err)
	service := suite.createService()

	// Exercise ---
	result, err := service.Run(context.Background(), Input{Token: "expired-reset-token"})

	// Verify ---
	require.NoError(t, err)
	require.False(t, result.Account.IsPresent)
	require.Equal(t, 1, suite.tokenRepo.PurgeCount)
}

func TestTokenForDeletedAccount(t *testing.T) {
	// Setup ---
	suite := setupSuite(t)
	suite.accountRepo.Accounts = nil
	service := suite.createService()

	// Exercise ---
	result, err := service.Run(context.Background(), Input{Token: TOKEN})

	// Verify ---
	require.NoError(t, err)
	require.False(t, result.Account.IsPresent)
}

func TestStorageError(t *testing.T) {
	// Setup ---
	suite := setupSuite(t)
	suite.tokenRepo.ReturnError = true
	service := suite.createService()

	// Exercise ---
	result, err := service.Run(context.Background(), Input{Token: TOKEN})

	// Verify ---
	require.Error(t, err)
	require.False(t, result.Account.IsPresent)
}
