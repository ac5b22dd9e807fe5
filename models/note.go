// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Note is the single user-owned record managed by the application.
type Note struct {
	// ID is the server-assigned identifier.
	ID int64 `json:"id"`

	// Title is a short heading, at most 200 characters.
	Title string `json:"title" validate:"notblank,max=200"`

	// Content is the note body.
	Content string `json:"content" validate:"notblank"`

	// AuthorID is the owner of the note. It is always taken from the
	// authenticated user and never from the request body.
	AuthorID int64 `json:"author" validate:"gt=0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Note model.
func (n Note) TableName() string {
	return "notes"
}

// NoteFilter narrows a note listing. AuthorID is mandatory,
// zero Limit means no limit.
type NoteFilter struct {
	AuthorID int64
	Limit    uint64
	Offset   uint64
}

// NoteUpdate describes a change of a single note.
// Only non-nil fields are written (partial update support).
type NoteUpdate struct {
	ID       int64 `json:"-" validate:"gt=0"`
	AuthorID int64 `json:"-" validate:"gt=0"`

	Title   *string `json:"title,omitempty" validate:"omitnil,notblank,max=200"`
	Content *string `json:"content,omitempty" validate:"omitnil,notblank"`

	// Partial is true for PATCH requests. Full updates require both fields.
	Partial bool `json:"-"`
}
