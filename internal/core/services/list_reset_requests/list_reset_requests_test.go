package listresetrequests

import (
	"context"
	"passwordreset/internal/core/domain/account"
	"passwordreset/internal/core/domain/logging"
	"passwordreset/internal/core/domain/token"
	"passwordreset/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const SOURCE_ADDRESS = "203.0.113.5"

var NOW = time.Date(2023, 6, 15, 12, 30, 0, 0, time.UTC)

type suite struct {
	log       *logging.FakeLogger
	tokenRepo *token.FakeTokenRepository
}

func setupSuite() *suite {
	return &suite{
		log:       logging.NewFakeLogger(),
		tokenRepo: token.NewFakeTokenRepository(),
	}
}

func (s *suite) createService() services.Service[Input, Result] {
	return New(s.log, s.tokenRepo, func() time.Time { return NOW })
}

func TestEmptyWhenNoRequests(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	service := suite.createService()

	// Exercise ---
	result, err := service.Run(context.Background(), Input{})

	// Verify ---
	require.NoError(t, err)
	require.Empty(t, result.Requests)
}

func TestListsOutstandingRequests(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	for _, input := range []token.CreateTokenInput{
		{Token: "bob-token", Username: "bob", SourceAddress: "198.51.100.7", ExpiresAt: NOW.Add(time.Hour)},
		{Token: "alice-late", Username: "alice", SourceAddress: SOURCE_ADDRESS, ExpiresAt: NOW.Add(2 * time.Hour)},
		{Token: "alice-early", Username: "alice", SourceAddress: SOURCE_ADDRESS, ExpiresAt: NOW.Add(time.Hour)},
	} {
		err := suite.tokenRepo.Create(context.Background(), input)
		require.NoError(t, err)
	}
	service := suite.createService()

	// Exercise ---
	result, err := service.Run(context.Background(), Input{})

	// Verify: owner ascending, then expiry ascending.
	require.NoError(t, err)
	require.Equal(t, []token.ResetRequest{
		{Username: "alice", SourceAddress: SOURCE_ADDRESS, ExpiresAt: NOW.Add(time.Hour)},
		{Username: "alice", SourceAddress: SOURCE_ADDRESS, ExpiresAt: NOW.Add(2 * time.Hour)},
		{Username: "bob", SourceAddress: "198.51.100.7", ExpiresAt: NOW.Add(time.Hour)},
	}, result.Requests)
}

func TestExpiredRequestsAreDropped(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	for _, input := range []token.CreateTokenInput{
		{Token: "live-token", Username: "alice", SourceAddress: SOURCE_ADDRESS, ExpiresAt: NOW.Add(time.Hour)},
		{Token: "stale-token", Username: "alice", SourceAddress: SOURCE_ADDRESS, ExpiresAt: NOW.Add(-time.Minute)},
	} {
		err := suite.tokenRepo.Create(context.Background(), input)
		require.NoError(t, err)
	}
	service := suite.createService()

	// Exercise ---
	result, err := service.Run(context.Background(), Input{})

	// Verify ---
	require.NoError(t, err)
	require.Len(t, result.Requests, 1)
	require.Equal(t, account.Username("alice"), result.Requests[0].Username)
	require.Equal(t, NOW.Add(time.Hour), result.Requests[0].ExpiresAt)
	require.Equal(t, 1, suite.tokenRepo.PurgeCount)
}

func TestStorageErrorYieldsEmptyList(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	suite.tokenRepo.ReturnError = true
	service := suite.createService()

	// Exercise ---
	result, err := service.Run(context.Background(), Input{})

	// Verify: listing never fails, it degrades to an empty view.
	require.NoError(t, err)
	require.NotNil(t, result.Requests)
	require.Empty(t, result.Requests)
	require.Len(t, suite.log.Logged, 1)
	require.Equal(t, logging.ERROR, suite.log.Logged[0].Level)
}
