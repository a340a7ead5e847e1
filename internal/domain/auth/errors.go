package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("wrong id or password")
	ErrUserIDTaken        = errors.New("this id is already registered")
)
