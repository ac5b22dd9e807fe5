// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// notes server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// the "error" or "message" field of HTTP response bodies. Keeping them in one
// place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "Invalid JSON data"

	// MsgCredentialsRequired is returned by login endpoints when the username
	// or the password is missing.
	MsgCredentialsRequired = "Username and password required"

	// MsgInvalidCredentials is returned for an unknown user, a wrong password
	// and an inactive account alike.
	MsgInvalidCredentials = "Invalid credentials"

	// MsgRegistrationFailed accompanies the field-level "details" of a
	// rejected registration.
	MsgRegistrationFailed = "Registration failed"

	// MsgValidationFailed accompanies the field-level "details" of a rejected
	// note payload.
	MsgValidationFailed = "Validation failed"

	MsgRefreshTokenRequired = "Refresh token required"
	MsgInvalidRefreshToken  = "Invalid refresh token"

	// MsgInvalidToken is returned by logout for a malformed, expired or
	// already blacklisted refresh token.
	MsgInvalidToken = "Invalid token"

	MsgLogoutSuccessful = "Logout successful"

	// MsgNotAuthenticated is returned by protected endpoints when neither a
	// bearer token nor a session cookie is present.
	MsgNotAuthenticated = "Authentication credentials were not provided."

	// MsgTokenIsExpiredOrInvalid is returned by protected endpoints when the
	// access token cannot be verified.
	MsgTokenIsExpiredOrInvalid = "Given token not valid for any token type"

	// MsgNotFound answers unknown routes and unsupported methods.
	MsgNotFound     = "Not found."
	MsgNoteNotFound = MsgNotFound
	MsgUserNotFound = "User not found"

	// MsgNoFieldsToUpdate is returned by PATCH when the body sets neither
	// title nor content.
	MsgNoFieldsToUpdate = "At least one of title or content must be provided"

	MsgInvalidPagination = "Invalid pagination parameters"

	MsgTooManyRequests = "Too many requests"

	MsgInternalServerError = "Internal server error"
)
