// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// TokenResponse is returned by every endpoint that issues tokens.
// User is omitted by refresh and obtain-pair endpoints.
type TokenResponse struct {
	Access  string    `json:"access"`
	Refresh string    `json:"refresh"`
	User    *UserInfo `json:"user,omitempty"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`

	// Details holds field-level validation messages keyed by field name.
	Details map[string][]string `json:"details,omitempty"`
}

// MessageResponse is a plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}
