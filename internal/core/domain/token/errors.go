package token

import "errors"

var (
	ErrTokenDoesNotExist  = errors.New("reset token does not exist")
	ErrTokenAlreadyExists = errors.New("reset token already exists")
)
