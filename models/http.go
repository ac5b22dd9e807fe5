// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RegisterRequest is the registration payload.
//
// PasswordConfirm accepts both "password_confirm" and the "password2" alias,
// see [RegisterRequest.Confirmation].
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,max=150,username"`
	Email           string `json:"email" validate:"required,max=254,email"`
	Password        string `json:"password" validate:"required,min=8,max=128"`
	PasswordConfirm string `json:"password_confirm"`
	Password2       string `json:"password2"`

	// ConfirmationRequired is set by the transport layer for endpoints that
	// insist on a repeated password.
	ConfirmationRequired bool `json:"-"`
}

// Confirmation returns the repeated password regardless of the field name
// the client used.
func (r RegisterRequest) Confirmation() string {
	if r.PasswordConfirm != "" {
		return r.PasswordConfirm
	}
	return r.Password2
}

// Credentials is the login payload.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries a refresh token for refresh and logout calls.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// NoteRequest is the body of note create and update calls. Pointers let
// PATCH distinguish omitted fields from empty ones.
type NoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}
