package sendresettoken

import (
	"context"
	"errors"
	"strings"
	"time"

	"passwordreset/internal/core/domain/account"
	c "passwordreset/internal/core/domain/common"
	e "passwordreset/internal/core/domain/errors"
	"passwordreset/internal/core/domain/logging"
	"passwordreset/internal/core/domain/notification"
	"passwordreset/internal/core/domain/token"
	"passwordreset/internal/core/services"
)

type Input struct {
	// Identifier is whatever the requester typed: a plain username,
	// username@server-domain, or the account's email address.
	Identifier    string
	SourceAddress string
}

func (i Input) GetRateLimitKey() string {
	return "send-reset-token::" + i.SourceAddress
}

type Result struct {
	// Token is set only when a token was actually issued. It must never
	// reach an end user response; the HTTP layer exposes it through a
	// test-mode header only.
	Token token.Token
}

type service struct {
	log               logging.Logger
	accountRepository account.AccountRepository
	tokenRepository   token.TokenRepository
	tokenGenerator    token.Generator
	tokenSender       notification.TokenSender
	serverDomain      string
	tokenExpiresIn    time.Duration
	now               func() time.Time
}

func New(
	log logging.Logger,
	accountRepository account.AccountRepository,
	tokenRepository token.TokenRepository,
	tokenGenerator token.Generator,
	tokenSender notification.TokenSender,
	serverDomain string,
	tokenExpiresIn time.Duration,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if accountRepository == nil {
		panic(e.NewNilArgumentError("accountRepository"))
	}
	if tokenRepository == nil {
		panic(e.NewNilArgumentError("tokenRepository"))
	}
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	if tokenSender == nil {
		panic(e.NewNilArgumentError("tokenSender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:               log,
		accountRepository: accountRepository,
		tokenRepository:   tokenRepository,
		tokenGenerator:    tokenGenerator,
		tokenSender:       tokenSender,
		serverDomain:      strings.ToLower(serverDomain),
		tokenExpiresIn:    tokenExpiresIn,
		now:               now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	a, found, err := s.resolveAccount(ctx, input.Identifier)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not resolve account for password reset request.",
			logging.Entry("identifier", input.Identifier),
			logging.Entry("err", err),
		)
		return result, err
	}
	if !found {
		// Requests for unknown identifiers look exactly like successful
		// ones from the outside, to keep valid identifiers unguessable.
		s.log.Info(
			ctx,
			"Password reset requested for unknown identifier.",
			logging.Entry("identifier", input.Identifier),
			logging.Entry("sourceAddress", input.SourceAddress),
		)
		return result, nil
	}

	now := s.now()
	purged, err := s.tokenRepository.DeleteExpired(ctx, now)
	if err != nil {
		s.log.Error(ctx, "Could not purge expired reset tokens.", logging.Entry("err", err))
		return result, err
	}
	s.log.Debug(ctx, "Purged expired reset tokens.", logging.Entry("count", purged))

	newToken := s.tokenGenerator.GenerateResetToken()
	err = s.tokenRepository.Create(ctx, token.CreateTokenInput{
		Token:         newToken,
		Username:      a.Username,
		SourceAddress: input.SourceAddress,
		ExpiresAt:     now.Add(s.tokenExpiresIn),
	})
	if err != nil {
		s.log.Error(
			ctx,
			"Could not persist reset token.",
			logging.Entry("username", a.Username),
			logging.Entry("err", err),
		)
		return result, err
	}
	result.Token = newToken

	if !notification.IsDeliverable(a) {
		s.log.Info(
			ctx,
			"Reset notification skipped, account email is absent or restricted.",
			logging.Entry("username", a.Username),
		)
		return result, nil
	}
	if err := s.tokenSender.SendResetToken(ctx, a, newToken); err != nil {
		s.log.Error(
			ctx,
			"Could not send reset notification.",
			logging.Entry("username", a.Username),
			logging.Entry("err", err),
		)
		return result, nil
	}

	s.log.Info(
		ctx,
		"Password reset token has been issued.",
		logging.Entry("username", a.Username),
		logging.Entry("sourceAddress", input.SourceAddress),
	)
	return result, nil
}

func (s *service) resolveAccount(
	ctx context.Context,
	identifier string,
) (a account.Account, found bool, err error) {
	identifier = strings.TrimSpace(identifier)

	local := identifier
	if at := strings.Index(identifier, "@"); at >= 0 {
		domain := strings.ToLower(identifier[at+1:])
		if domain == s.serverDomain {
			local = identifier[:at]
		}
	}
	a, err = s.accountRepository.GetByUsername(ctx, account.Username(local))
	if err == nil {
		return a, true, nil
	}
	if !errors.Is(err, account.ErrAccountDoesNotExist) {
		return a, false, err
	}

	if strings.Contains(identifier, "@") {
		a, err = s.accountRepository.GetByEmail(ctx, c.NewEmail(identifier))
		if err == nil {
			return a, true, nil
		}
		if !errors.Is(err, account.ErrAccountDoesNotExist) {
			return a, false, err
		}
	}
	return a, false, nil
}
