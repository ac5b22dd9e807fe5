package service

import (
	"context"

	"github.com/MKhiriev/go-notes-keeper/internal/validators"
	"github.com/MKhiriev/go-notes-keeper/models"
)

// NoteValidationService rejects invalid note payloads before they reach the
// wrapped NoteService. Reads pass straight through.
type NoteValidationService struct {
	inner     NoteService
	validator validators.Validator
}

func NewNoteValidationService() NoteServiceWrapper {
	return &NoteValidationService{
		validator: validators.NewNoteValidator(),
	}
}

func (v *NoteValidationService) List(ctx context.Context, filter models.NoteFilter) ([]models.Note, error) {
	if filter.AuthorID <= 0 {
		return nil, validators.ErrInvalidAuthorID
	}

	return v.inner.List(ctx, filter)
}

func (v *NoteValidationService) Create(ctx context.Context, note models.Note) (models.Note, error) {
	if err := v.validator.Validate(ctx, note); err != nil {
		return models.Note{}, err
	}

	return v.inner.Create(ctx, note)
}

func (v *NoteValidationService) Get(ctx context.Context, authorID, noteID int64) (models.Note, error) {
	return v.inner.Get(ctx, authorID, noteID)
}

func (v *NoteValidationService) Update(ctx context.Context, update models.NoteUpdate) (models.Note, error) {
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.Note{}, err
	}

	return v.inner.Update(ctx, update)
}

func (v *NoteValidationService) Delete(ctx context.Context, authorID, noteID int64) error {
	return v.inner.Delete(ctx, authorID, noteID)
}

func (v *NoteValidationService) Wrap(wrapped NoteService) NoteService {
	v.inner = wrapped
	return v
}
