package listresetrequests

import (
	"context"
	"time"

	e "passwordreset/internal/core/domain/errors"
	"passwordreset/internal/core/domain/logging"
	"passwordreset/internal/core/domain/token"
	"passwordreset/internal/core/services"
)

type Input struct{}

type Result struct {
	Requests []token.ResetRequest
}

type service struct {
	log             logging.Logger
	tokenRepository token.TokenRepository
	now             func() time.Time
}

func New(
	log logging.Logger,
	tokenRepository token.TokenRepository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if tokenRepository == nil {
		panic(e.NewNilArgumentError("tokenRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:             log,
		tokenRepository: tokenRepository,
		now:             now,
	}
}

// Run returns the outstanding reset requests. This is a best-effort
// diagnostic view: storage failures are logged and an empty list is
// returned instead of an error.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	now := s.now()
	purged, err := s.tokenRepository.DeleteExpired(ctx, now)
	if err != nil {
		s.log.Error(ctx, "Could not purge expired reset tokens.", logging.Entry("err", err))
		result.Requests = []token.ResetRequest{}
		return result, nil
	}
	s.log.Debug(ctx, "Purged expired reset tokens.", logging.Entry("count", purged))

	requests, err := s.tokenRepository.ListRequests(ctx, now)
	if err != nil {
		s.log.Error(ctx, "Could not list outstanding reset requests.", logging.Entry("err", err))
		result.Requests = []token.ResetRequest{}
		return result, nil
	}
	result.Requests = requests
	return result, nil
}
