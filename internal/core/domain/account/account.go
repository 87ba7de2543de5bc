package account

import (
	c "passwordreset/internal/core/domain/common"
)

// Username is the stable identifier of an account. The reset token
// records refer to accounts by username only; account state itself is
// owned by the account store.
type Username string

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type Account struct {
	Username Username
	Name     string
	Email    c.Optional[c.Email]
}
