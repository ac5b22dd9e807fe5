// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/models"
)

// noteRepository is the PostgreSQL-backed implementation of
// [NoteRepository]. Every statement filters by author_id, so a note owned
// by another user behaves exactly like a missing one.
type noteRepository struct {
	*DB
	logger *logger.Logger
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection and logger.
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Msg("creating note repository")
	return &noteRepository{
		DB:     db,
		logger: logger,
	}
}

// ListNotes returns the author's notes, newest first. An author without
// notes gets an empty, non-nil slice.
func (n *noteRepository) ListNotes(ctx context.Context, filter models.NoteFilter) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListNotesQuery(filter)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.ListNotes").
			Int64("author_id", filter.AuthorID).
			Msg("failed to create query")
		return nil, err
	}

	var rows *sql.Rows
	err = n.withRetry(ctx, func() error {
		var queryErr error
		rows, queryErr = n.DB.QueryContext(ctx, query, args...)
		return queryErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.ListNotes").
			Int64("author_id", filter.AuthorID).
			Msg("failed to execute query for listing notes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0, 16)
	for rows.Next() {
		var note models.Note
		if scanErr := rows.Scan(&note.ID, &note.Title, &note.Content, &note.AuthorID, &note.CreatedAt, &note.UpdatedAt); scanErr != nil {
			log.Err(scanErr).
				Str("func", "noteRepository.ListNotes").
				Int64("author_id", filter.AuthorID).
				Msg("failed to scan note row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		notes = append(notes, note)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "noteRepository.ListNotes").
			Int64("author_id", filter.AuthorID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return notes, nil
}

// CreateNote inserts a note and returns it as stored.
func (n *noteRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	query, args, err := buildCreateNoteQuery(note)
	if err != nil {
		return models.Note{}, err
	}

	created, err := n.queryNote(ctx, query, args)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "noteRepository.CreateNote").
			Int64("author_id", note.AuthorID).
			Msg("failed to insert note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return created, nil
}

// GetNote returns the note with noteID owned by authorID or [ErrNoteNotFound].
func (n *noteRepository) GetNote(ctx context.Context, authorID, noteID int64) (models.Note, error) {
	query, args, err := buildGetNoteQuery(authorID, noteID)
	if err != nil {
		return models.Note{}, err
	}

	var note models.Note
	err = n.withRetry(ctx, func() error {
		var queryErr error
		note, queryErr = n.queryNote(ctx, query, args)
		return queryErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Note{}, ErrNoteNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "noteRepository.GetNote").
			Int64("author_id", authorID).
			Int64("note_id", noteID).
			Msg("failed to get note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return note, nil
}

// UpdateNote applies the non-nil fields of update and returns the result.
// Returns [ErrNoteNotFound] when nothing matched.
func (n *noteRepository) UpdateNote(ctx context.Context, update models.NoteUpdate) (models.Note, error) {
	query, args, err := buildUpdateNoteQuery(update)
	if err != nil {
		return models.Note{}, err
	}

	updated, err := n.queryNote(ctx, query, args)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Note{}, ErrNoteNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "noteRepository.UpdateNote").
			Int64("author_id", update.AuthorID).
			Int64("note_id", update.ID).
			Msg("failed to update note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return updated, nil
}

// DeleteNote removes the note. Returns [ErrNoteNotFound] when nothing matched.
func (n *noteRepository) DeleteNote(ctx context.Context, authorID, noteID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteNoteQuery(authorID, noteID)
	if err != nil {
		return err
	}

	result, err := n.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.DeleteNote").
			Int64("author_id", authorID).
			Int64("note_id", noteID).
			Msg("failed to delete note")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	return nil
}

func (n *noteRepository) queryNote(ctx context.Context, query string, args []any) (models.Note, error) {
	var note models.Note
	err := n.DB.QueryRowContext(ctx, query, args...).
		Scan(&note.ID, &note.Title, &note.Content, &note.AuthorID, &note.CreatedAt, &note.UpdatedAt)
	return note, err
}
