package validators

import (
	"context"

	"github.com/MKhiriev/go-notes-keeper/models"
	"github.com/go-playground/validator/v10"
)

// Field names accepted for field-level scoping of note payloads.
const (
	FieldTitle   = "title"
	FieldContent = "content"
)

// NoteValidator checks notes before they are created or updated.
type NoteValidator struct {
	engine *validator.Validate
}

// NewNoteValidator constructs a NoteValidator and returns it as the
// Validator interface.
func NewNoteValidator() Validator {
	return &NoteValidator{engine: newEngine()}
}

// Validate dispatches on the dynamic type of obj. Supported types are
// models.Note and models.NoteUpdate, by value or pointer.
func (v *NoteValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Note:
		return v.validateNote(ctx, value, fields...)
	case *models.Note:
		return v.validateNote(ctx, *value, fields...)
	case models.NoteUpdate:
		return v.validateNoteUpdate(ctx, value)
	case *models.NoteUpdate:
		return v.validateNoteUpdate(ctx, *value)
	default:
		return ErrUnsupportedType
	}
}

// validateNote checks a note about to be created. The author must be set,
// fields optionally narrows which of title and content are reported.
func (v *NoteValidator) validateNote(ctx context.Context, note models.Note, fields ...string) error {
	if note.AuthorID <= 0 {
		return ErrInvalidAuthorID
	}

	verr := NewValidationError()
	if err := collect(v.engine.StructCtx(ctx, note), verr); err != nil {
		return err
	}

	return verr.only(fields...).orNil()
}

// validateNoteUpdate checks ids, then field rules. A full update needs
// both title and content, a partial one at least one of them.
func (v *NoteValidator) validateNoteUpdate(ctx context.Context, update models.NoteUpdate) error {
	if update.ID <= 0 {
		return ErrInvalidNoteID
	}
	if update.AuthorID <= 0 {
		return ErrInvalidAuthorID
	}

	if update.Partial && update.Title == nil && update.Content == nil {
		return ErrNoFieldsToUpdate
	}

	verr := NewValidationError()
	if !update.Partial {
		if update.Title == nil {
			verr.Add(FieldTitle, MsgRequired)
		}
		if update.Content == nil {
			verr.Add(FieldContent, MsgRequired)
		}
	}

	if err := collect(v.engine.StructCtx(ctx, update), verr); err != nil {
		return err
	}

	return verr.orNil()
}
