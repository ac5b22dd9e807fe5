// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "errors"

var (
	ErrCorruptedSession  = errors.New("session file is corrupted, run `notes login` again")
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrNothingToUpdate   = errors.New("nothing to update: pass --title and/or --content")
	ErrInvalidNoteID     = errors.New("invalid note id")
	ErrEmptyPasswordLine = errors.New("password must not be empty")
)
