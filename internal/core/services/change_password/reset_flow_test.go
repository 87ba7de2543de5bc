package changepassword

import (
	"context"
	"testing"
	"time"

	"passwordreset/internal/core/domain/account"
	c "passwordreset/internal/core/domain/common"
	"passwordreset/internal/core/domain/logging"
	"passwordreset/internal/core/domain/notification"
	"passwordreset/internal/core/domain/token"
	getaccountbytoken "passwordreset/internal/core/services/get_account_by_token"
	sendresettoken "passwordreset/internal/core/services/send_reset_token"

	"github.com/stretchr/testify/require"
)

// Walks the full lifecycle over shared fakes: request a token, resolve
// it, change the password with it, then verify every token for the
// owner is gone.
func TestResetFlow(t *testing.T) {
	// Setup ---
	log := logging.NewFakeLogger()
	accountRepo := account.NewFakeAccountRepository(
		account.Account{
			Username: "alice",
			Name:     "Alice",
			Email:    c.NewOptional(c.NewEmail("alice@realdomain.com"), true),
		},
	)
	tokenRepo := token.NewFakeTokenRepository()
	generator := token.NewFakeTokenGenerator("flow-token-1", "flow-token-2")
	sender := notification.NewFakeTokenSender()
	hasher := account.NewFakePasswordHasher()
	now := func() time.Time { return NOW }

	sendService := sendresettoken.New(
		log, accountRepo, tokenRepo, generator, sender, "chat.realdomain.com", time.Hour, now,
	)
	resolveService := getaccountbytoken.New(log, accountRepo, tokenRepo, now)
	changeService := New(
		log, accountRepo, tokenRepo, hasher, PasswordLengthPolicy{MinLength: 8}, now,
	)

	// Exercise ---
	sent, err := sendService.Run(
		context.Background(),
		sendresettoken.Input{Identifier: "alice", SourceAddress: SOURCE_ADDRESS},
	)
	require.NoError(t, err)
	second, err := sendService.Run(
		context.Background(),
		sendresettoken.Input{Identifier: "alice", SourceAddress: SOURCE_ADDRESS},
	)
	require.NoError(t, err)

	resolved, err := resolveService.Run(
		context.Background(),
		getaccountbytoken.Input{Token: sent.Token},
	)
	require.NoError(t, err)
	require.True(t, resolved.Account.IsPresent)
	require.Equal(t, account.Username("alice"), resolved.Account.Value.Username)

	_, err = changeService.Run(context.Background(), Input{
		Token:       sent.Token,
		Username:    "alice",
		NewPassword: NEW_PASSWORD,
	})
	require.NoError(t, err)

	// Verify ---
	require.True(t, hasher.ValidatePassword(NEW_PASSWORD, accountRepo.Passwords["alice"]))
	for _, usedToken := range []token.Token{sent.Token, second.Token} {
		resolved, err := resolveService.Run(
			context.Background(),
			getaccountbytoken.Input{Token: usedToken},
		)
		require.NoError(t, err)
		require.False(t, resolved.Account.IsPresent)
	}
}
