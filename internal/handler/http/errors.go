// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when looking for
// credentials. Callers can match against them with [errors.Is].
var (
	// ErrNoCredentials is returned when the request carries neither an
	// "Authorization" header nor a session cookie.
	ErrNoCredentials = errors.New("no `Authorization` header or session cookie")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrNoUserInContext is returned by protected handlers when the auth
	// middleware did not run before them.
	ErrNoUserInContext = errors.New("no user ID in request context")
)
