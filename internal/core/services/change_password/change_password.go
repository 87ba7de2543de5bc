package changepassword

import (
	"context"
	"errors"
	"time"

	"passwordreset/internal/core/domain/account"
	e "passwordreset/internal/core/domain/errors"
	"passwordreset/internal/core/domain/logging"
	"passwordreset/internal/core/domain/token"
	"passwordreset/internal/core/services"
)

type Input struct {
	Token       token.Token
	Username    account.Username
	NewPassword account.RawPassword
}

type Result struct{}

// PasswordLengthPolicy carries the configured bounds for a new
// password. MaxLength of 0 means no upper bound.
type PasswordLengthPolicy struct {
	MinLength int
	MaxLength int
}

func (p PasswordLengthPolicy) Validate(password account.RawPassword) error {
	if len(password) < p.MinLength {
		return account.ErrPasswordTooShort
	}
	if p.MaxLength > 0 && len(password) > p.MaxLength {
		return account.ErrPasswordTooLong
	}
	return nil
}

type service struct {
	log               logging.Logger
	accountRepository account.AccountRepository
	tokenRepository   token.TokenRepository
	passwordHasher    account.PasswordHasher
	lengthPolicy      PasswordLengthPolicy
	now               func() time.Time
}

func New(
	log logging.Logger,
	accountRepository account.AccountRepository,
	tokenRepository token.TokenRepository,
	passwordHasher account.PasswordHasher,
	lengthPolicy PasswordLengthPolicy,
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
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:               log,
		accountRepository: accountRepository,
		tokenRepository:   tokenRepository,
		passwordHasher:    passwordHasher,
		lengthPolicy:      lengthPolicy,
		now:               now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err := s.lengthPolicy.Validate(input.NewPassword); err != nil {
		return result, err
	}

	now := s.now()
	purged, err := s.tokenRepository.DeleteExpired(ctx, now)
	if err != nil {
		s.log.Error(ctx, "Could not purge expired reset tokens.", logging.Entry("err", err))
		return result, err
	}
	s.log.Debug(ctx, "Purged expired reset tokens.", logging.Entry("count", purged))

	owner, err := s.tokenRepository.GetOwnerByToken(ctx, input.Token, now)
	if errors.Is(err, token.ErrTokenDoesNotExist) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not look up reset token.", logging.Entry("err", err))
		return result, err
	}
	if owner != input.Username {
		// A valid token submitted with somebody else's username is
		// indistinguishable from a bad token on purpose.
		s.log.Warning(
			ctx,
			"Reset token owner does not match the submitted username.",
			logging.Entry("username", input.Username),
		)
		return result, token.ErrTokenDoesNotExist
	}

	a, err := s.accountRepository.GetByUsername(ctx, owner)
	if errors.Is(err, account.ErrAccountDoesNotExist) {
		s.log.Info(
			ctx,
			"Reset token resolved to a missing account.",
			logging.Entry("username", owner),
		)
		return result, token.ErrTokenDoesNotExist
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get account for password change.",
			logging.Entry("username", owner),
			logging.Entry("err", err),
		)
		return result, err
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		return result, err
	}
	err = s.accountRepository.SetPassword(ctx, a.Username, newPasswordHash)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update account password.",
			logging.Entry("username", a.Username),
			logging.Entry("err", err),
		)
		return result, err
	}

	// Invalidate every outstanding token for the owner, not just the one
	// used: a successful change closes all in-flight reset requests.
	err = s.tokenRepository.DeleteByUsername(ctx, a.Username)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not delete reset tokens after password change.",
			logging.Entry("username", a.Username),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"New password has been successfully set.",
		logging.Entry("username", a.Username),
	)
	return result, nil
}
