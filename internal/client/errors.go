package client

import "errors"

var (
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrPermission      = errors.New("permission denied")
	ErrCommandFailed   = errors.New("command failed")
	ErrNoSession       = errors.New("login response contained no session")
	ErrNoData          = errors.New("response contained no data")
)
