package session

import "errors"

var ErrUnauthenticated = errors.New("missing or invalid session token")
