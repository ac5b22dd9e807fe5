package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-notes-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// NoteRepository persists notes. Every method is scoped to a single author.
type NoteRepository interface {
	ListNotes(ctx context.Context, filter models.NoteFilter) ([]models.Note, error)
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)
	GetNote(ctx context.Context, authorID, noteID int64) (models.Note, error)
	UpdateNote(ctx context.Context, update models.NoteUpdate) (models.Note, error)
	DeleteNote(ctx context.Context, authorID, noteID int64) error
}

// TokenBlacklist remembers refresh tokens that must no longer be accepted.
type TokenBlacklist interface {
	Add(ctx context.Context, token models.BlacklistedToken) error
	Contains(ctx context.Context, jti string) (bool, error)
	// PurgeExpired removes entries whose token expired before now and
	// returns how many were removed.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
