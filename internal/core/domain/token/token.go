package token

import (
	"passwordreset/internal/core/domain/account"
	"time"
)

// Token is the opaque credential mailed to the account owner. It is the
// only thing needed to resolve a reset request, so it must never be
// logged or exposed through the observability listing.
type Token string

func (t Token) String() string {
	return "***"
}

// ResetToken is a persisted reset record. Records are immutable once
// written; they disappear either when the owner's password is changed
// or when a purge sweep removes them after expiry.
type ResetToken struct {
	Token         Token
	Username      account.Username
	SourceAddress string
	ExpiresAt     time.Time
}

func (t ResetToken) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

// ResetRequest is the observability view of a record. The token value
// is deliberately absent.
type ResetRequest struct {
	Username      account.Username
	SourceAddress string
	ExpiresAt     time.Time
}

type Generator interface {
	GenerateResetToken() Token
}
