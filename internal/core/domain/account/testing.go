package account

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	c "passwordreset/internal/core/domain/common"
	"sync"
)

type FakeAccountRepository struct {
	Accounts    []Account
	Passwords   map[Username]PasswordHash
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeAccountRepository(accounts ...Account) *FakeAccountRepository {
	return &FakeAccountRepository{
		Accounts:  accounts,
		Passwords: make(map[Username]PasswordHash),
	}
}

func (r *FakeAccountRepository) GetByUsername(ctx context.Context, username Username) (a Account, err error) {
	if r.ReturnError {
		return a, fmt.Errorf("could not get account %v", username)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, a := range r.Accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return a, ErrAccountDoesNotExist
}

func (r *FakeAccountRepository) GetByEmail(ctx context.Context, email c.Email) (a Account, err error) {
	if r.ReturnError {
		return a, fmt.Errorf("could not get account by email %v", email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, a := range r.Accounts {
		if a.Email.IsPresent && a.Email.Value == email {
			return a, nil
		}
	}
	return a, ErrAccountDoesNotExist
}

func (r *FakeAccountRepository) SetPassword(ctx context.Context, username Username, password PasswordHash) error {
	if r.ReturnError {
		return fmt.Errorf("could not set password for account %v", username)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, a := range r.Accounts {
		if a.Username == username {
			r.Passwords[username] = password
			return nil
		}
	}
	return ErrAccountDoesNotExist
}

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}
