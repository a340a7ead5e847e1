package profile

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidGross    = errors.New("gross salary must be greater than the fixed allowances")
)
