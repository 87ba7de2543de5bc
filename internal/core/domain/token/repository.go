package token

import (
	"context"
	"passwordreset/internal/core/domain/account"
	"time"
)

type CreateTokenInput struct {
	Token         Token
	Username      account.Username
	SourceAddress string
	ExpiresAt     time.Time
}

// TokenRepository is the store of outstanding reset records. Expiry is
// enforced inside the store queries: GetOwnerByToken and ListRequests
// never return a record whose expiry has passed, even if DeleteExpired
// has not removed it yet.
type TokenRepository interface {
	Create(ctx context.Context, input CreateTokenInput) error
	DeleteExpired(ctx context.Context, now time.Time) (count int64, err error)
	GetOwnerByToken(ctx context.Context, t Token, now time.Time) (account.Username, error)
	DeleteByUsername(ctx context.Context, username account.Username) error
	ListRequests(ctx context.Context, now time.Time) ([]ResetRequest, error)
}
