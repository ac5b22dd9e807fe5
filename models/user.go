// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account entity used for authentication and authorization.
// PasswordHash is never serialized.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Username is the unique login of the user.
	Username string `json:"username"`

	// Email is the contact address provided at registration.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"-"`

	// IsActive reports whether the account may authenticate.
	IsActive bool `json:"-"`

	// DateJoined is the timestamp when the user account was created.
	DateJoined time.Time `json:"date_joined"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Public returns the subset of user fields embedded into auth responses.
func (u User) Public() UserInfo {
	return UserInfo{
		UserID:   u.UserID,
		Username: u.Username,
		Email:    u.Email,
	}
}

// UserInfo is the short user description returned next to issued tokens.
type UserInfo struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
