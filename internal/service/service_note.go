package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/store"
	"github.com/MKhiriev/go-notes-keeper/models"
)

// MaxNotesPageSize caps the limit of a single List call.
const MaxNotesPageSize = 100

type noteService struct {
	noteRepository store.NoteRepository

	logger *logger.Logger
}

func NewNoteService(noteRepository store.NoteRepository, logger *logger.Logger) NoteService {
	return &noteService{
		noteRepository: noteRepository,
		logger:         logger,
	}
}

func (n *noteService) List(ctx context.Context, filter models.NoteFilter) ([]models.Note, error) {
	if filter.Limit > MaxNotesPageSize {
		filter.Limit = MaxNotesPageSize
	}

	notes, err := n.noteRepository.ListNotes(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("author_id", filter.AuthorID).Msg("listing notes failed")
		return nil, fmt.Errorf("listing notes failed: %w", err)
	}

	if notes == nil {
		notes = []models.Note{}
	}
	return notes, nil
}

func (n *noteService) Create(ctx context.Context, note models.Note) (models.Note, error) {
	created, err := n.noteRepository.CreateNote(ctx, note)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("author_id", note.AuthorID).Msg("note creation failed")
		return models.Note{}, fmt.Errorf("note creation failed: %w", err)
	}

	return created, nil
}

func (n *noteService) Get(ctx context.Context, authorID, noteID int64) (models.Note, error) {
	note, err := n.noteRepository.GetNote(ctx, authorID, noteID)
	if err != nil {
		return models.Note{}, n.noteError(ctx, "getting note failed", noteID, err)
	}

	return note, nil
}

func (n *noteService) Update(ctx context.Context, update models.NoteUpdate) (models.Note, error) {
	note, err := n.noteRepository.UpdateNote(ctx, update)
	if err != nil {
		return models.Note{}, n.noteError(ctx, "updating note failed", update.ID, err)
	}

	return note, nil
}

func (n *noteService) Delete(ctx context.Context, authorID, noteID int64) error {
	if err := n.noteRepository.DeleteNote(ctx, authorID, noteID); err != nil {
		return n.noteError(ctx, "deleting note failed", noteID, err)
	}

	return nil
}

// noteError maps a missing or foreign note to ErrNoteNotFound and logs
// everything else.
func (n *noteService) noteError(ctx context.Context, msg string, noteID int64, err error) error {
	if errors.Is(err, store.ErrNoteNotFound) {
		return fmt.Errorf("%w: %w", ErrNoteNotFound, err)
	}

	logger.FromContext(ctx).Err(err).Int64("note_id", noteID).Msg(msg)
	return fmt.Errorf("%s: %w", msg, err)
}
