package getaccountbytoken

import (
	"context"
	"errors"
	"time"

	"passwordreset/internal/core/domain/account"
	c "passwordreset/internal/core/domain/common"
	e "passwordreset/internal/core/domain/errors"
	"passwordreset/internal/core/domain/logging"
	"passwordreset/internal/core/domain/token"
	"passwordreset/internal/core/services"
)

type Input struct {
	Token token.Token
}

type Result struct {
	Account c.Optional[account.Account]
}

type service struct {
	log               logging.Logger
	accountRepository account.AccountRepository
	tokenRepository   token.TokenRepository
	now               func() time.Time
}

func New(
	log logging.Logger,
	accountRepository account.AccountRepository,
	tokenRepository token.TokenRepository,
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
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:               log,
		accountRepository: accountRepository,
		tokenRepository:   tokenRepository,
		now:               now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	now := s.now()
	purged, err := s.tokenRepository.DeleteExpired(ctx, now)
	if err != nil {
		s.log.Error(ctx, "Could not purge expired reset tokens.", logging.Entry("err", err))
		return result, err
	}
	s.log.Debug(ctx, "Purged expired reset tokens.", logging.Entry("count", purged))

	username, err := s.tokenRepository.GetOwnerByToken(ctx, input.Token, now)
	if errors.Is(err, token.ErrTokenDoesNotExist) {
		return result, nil
	}
	if err != nil {
		s.log.Error(ctx, "Could not look up reset token.", logging.Entry("err", err))
		return result, err
	}

	a, err := s.accountRepository.GetByUsername(ctx, username)
	if errors.Is(err, account.ErrAccountDoesNotExist) {
		// The token record outlived its account. Treated as not found;
		// the record itself is removed by a later purge sweep.
		s.log.Info(
			ctx,
			"Reset token resolved to a missing account.",
			logging.Entry("username", username),
		)
		return result, nil
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get account for reset token.",
			logging.Entry("username", username),
			logging.Entry("err", err),
		)
		return result, err
	}

	result.Account = c.NewOptional(a, true)
	return result, nil
}
