package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")

	// ErrNotLoggedIn is returned by calls that need tokens the adapter does
	// not hold.
	ErrNotLoggedIn = errors.New("not logged in")
)
