package account

import "errors"

var (
	ErrAccountDoesNotExist = errors.New("account does not exist")
	ErrPasswordTooShort    = errors.New("new password is too short")
	ErrPasswordTooLong     = errors.New("new password is too long")
)
