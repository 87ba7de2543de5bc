package account

import (
	"context"
	c "passwordreset/internal/core/domain/common"
)

type AccountRepository interface {
	GetByUsername(ctx context.Context, username Username) (Account, error)
	GetByEmail(ctx context.Context, email c.Email) (Account, error)
	SetPassword(ctx context.Context, username Username, password PasswordHash) error
}

type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}
