package service

import (
	"context"

	"github.com/MKhiriev/go-notes-keeper/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, creds models.Credentials) (models.User, error)
	CreateTokenPair(ctx context.Context, user models.User) (models.TokenPair, error)
	ParseAccessToken(ctx context.Context, tokenString string) (models.Token, error)
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	Profile(ctx context.Context, userID int64) (models.User, error)
}

// NoteService manages notes of a single author. Every method receives the
// author explicitly; a note of another author is reported as ErrNoteNotFound.
type NoteService interface {
	List(ctx context.Context, filter models.NoteFilter) ([]models.Note, error)
	Create(ctx context.Context, note models.Note) (models.Note, error)
	Get(ctx context.Context, authorID, noteID int64) (models.Note, error)
	Update(ctx context.Context, update models.NoteUpdate) (models.Note, error)
	Delete(ctx context.Context, authorID, noteID int64) error
}

// NoteServiceWrapper defines middleware composition for NoteService.
// Implementations wrap an existing NoteService to add behavior such as
// logging or validating.
type NoteServiceWrapper interface {
	Wrap(NoteService) NoteService // returns a decorated NoteService applying additional behavior
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
