package service

import "errors"

var (
	// ErrCredentialsRequired is returned by Login when the username or the
	// password is missing.
	ErrCredentialsRequired = errors.New("username and password required")

	// ErrInvalidCredentials is returned by Login for an unknown user, a wrong
	// password or an inactive account alike.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenIsExpiredOrInvalid covers every reason a token is rejected:
	// bad signature, wrong issuer or type, expiry and blacklisting.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrTokenCreationFailed = errors.New("token creation failed")
	ErrPasswordHashing     = errors.New("password hashing failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrNoteNotFound = errors.New("note not found")
	ErrUserNotFound = errors.New("user not found")
)
