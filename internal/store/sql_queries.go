package store

import (
	"fmt"

	"github.com/MKhiriev/go-notes-keeper/models"
	sq "github.com/Masterminds/squirrel"
)

const (
	createUser = `INSERT INTO users (username, email, password_hash)
    VALUES ($1, $2, $3)
    RETURNING id, username, email, password_hash, is_active, date_joined;`

	findUserByUsername = `SELECT id, username, email, password_hash, is_active, date_joined
    FROM users
    WHERE username = $1;`

	findUserByID = `SELECT id, username, email, password_hash, is_active, date_joined
    FROM users
    WHERE id = $1;`

	addToBlacklist = `INSERT INTO token_blacklist (jti, user_id, expires_at)
    VALUES ($1, $2, $3);`

	blacklistContains = `SELECT EXISTS (SELECT 1 FROM token_blacklist WHERE jti = $1);`

	purgeBlacklist = `DELETE FROM token_blacklist WHERE expires_at < $1;`
)

var (
	psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	noteColumns   = []string{"id", "title", "content", "author_id", "created_at", "updated_at"}
	noteReturning = "RETURNING id, title, content, author_id, created_at, updated_at"
)

func buildListNotesQuery(filter models.NoteFilter) (string, []any, error) {
	q := psql.
		Select(noteColumns...).
		From(models.Note{}.TableName()).
		Where(sq.Eq{"author_id": filter.AuthorID}).
		OrderBy("created_at DESC", "id DESC")

	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	return toSQL(q)
}

func buildGetNoteQuery(authorID, noteID int64) (string, []any, error) {
	return toSQL(psql.
		Select(noteColumns...).
		From(models.Note{}.TableName()).
		Where(sq.Eq{"id": noteID}).
		Where(sq.Eq{"author_id": authorID}))
}

func buildCreateNoteQuery(note models.Note) (string, []any, error) {
	return toSQL(psql.
		Insert(models.Note{}.TableName()).
		Columns("title", "content", "author_id").
		Values(note.Title, note.Content, note.AuthorID).
		Suffix(noteReturning))
}

// buildUpdateNoteQuery writes only the non-nil fields of update and always
// bumps updated_at.
func buildUpdateNoteQuery(update models.NoteUpdate) (string, []any, error) {
	q := psql.
		Update(models.Note{}.TableName()).
		Set("updated_at", sq.Expr("NOW()"))

	if update.Title != nil {
		q = q.Set("title", *update.Title)
	}
	if update.Content != nil {
		q = q.Set("content", *update.Content)
	}

	return toSQL(q.
		Where(sq.Eq{"id": update.ID}).
		Where(sq.Eq{"author_id": update.AuthorID}).
		Suffix(noteReturning))
}

func buildDeleteNoteQuery(authorID, noteID int64) (string, []any, error) {
	return toSQL(psql.
		Delete(models.Note{}.TableName()).
		Where(sq.Eq{"id": noteID}).
		Where(sq.Eq{"author_id": authorID}))
}

func toSQL(b sq.Sqlizer) (string, []any, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
