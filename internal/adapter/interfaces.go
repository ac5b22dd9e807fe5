// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the notes server.
//
// The primary abstraction is [ServerAdapter], which decouples the command-line
// client from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrNotFound] for 404, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-notes-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the notes
// server. Implementations are responsible for serialisation, token
// management, and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// SetTokens stores the token pair used by subsequent authenticated
	// requests, typically restored from a saved session.
	SetTokens(access, refresh string)

	// Tokens returns the access and refresh tokens currently held. Both are
	// empty before a successful Register or Login.
	Tokens() (access, refresh string)

	// Register creates an account and stores the issued token pair.
	Register(ctx context.Context, req models.RegisterRequest) (models.UserInfo, error)

	// Login authenticates with username and password and stores the issued
	// token pair.
	Login(ctx context.Context, creds models.Credentials) (models.UserInfo, error)

	// Refresh exchanges the refresh token for a new access token. Returns
	// [ErrNotLoggedIn] when no refresh token is held.
	Refresh(ctx context.Context) error

	// Logout revokes the refresh token on the server and forgets both tokens.
	Logout(ctx context.Context) error

	// Profile returns the authenticated user.
	Profile(ctx context.Context) (models.UserInfo, error)

	// ListNotes returns a page of the user's notes, newest first. A zero
	// limit returns every note.
	ListNotes(ctx context.Context, limit, offset uint64) ([]models.Note, error)

	// GetNote returns a single note. Notes of other users are reported as
	// [ErrNotFound].
	GetNote(ctx context.Context, noteID int64) (models.Note, error)

	// CreateNote creates a note owned by the authenticated user.
	CreateNote(ctx context.Context, req models.NoteRequest) (models.Note, error)

	// UpdateNote changes the non-nil fields of req.
	UpdateNote(ctx context.Context, noteID int64, req models.NoteRequest) (models.Note, error)

	// DeleteNote removes a note.
	DeleteNote(ctx context.Context, noteID int64) error

	// ServerVersion returns the version reported by the server.
	ServerVersion(ctx context.Context) (string, error)
}
