package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/models"
	"github.com/jackc/pgerrcode"
)

// postgresBlacklist keeps blacklisted refresh tokens in the token_blacklist
// table. Expired rows are removed by [postgresBlacklist.PurgeExpired].
type postgresBlacklist struct {
	*DB
}

// NewPostgresBlacklist constructs a [TokenBlacklist] backed by PostgreSQL.
func NewPostgresBlacklist(db *DB, logger *logger.Logger) TokenBlacklist {
	logger.Debug().Msg("creating postgres token blacklist")
	return &postgresBlacklist{DB: db}
}

func (b *postgresBlacklist) Add(ctx context.Context, token models.BlacklistedToken) error {
	_, err := b.DB.ExecContext(ctx, addToBlacklist, token.JTI, token.UserID, token.ExpiresAt)
	if err == nil {
		return nil
	}

	if postgresError(err) == pgerrcode.UniqueViolation {
		return ErrTokenAlreadyBlacklisted
	}

	logger.FromContext(ctx).Err(err).
		Str("func", "*postgresBlacklist.Add").
		Int64("user_id", token.UserID).
		Msg("failed to blacklist token")
	return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
}

func (b *postgresBlacklist) Contains(ctx context.Context, jti string) (bool, error) {
	var exists bool
	err := b.withRetry(ctx, func() error {
		return b.DB.QueryRowContext(ctx, blacklistContains, jti).Scan(&exists)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*postgresBlacklist.Contains").
			Msg("failed to check blacklist")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return exists, nil
}

func (b *postgresBlacklist) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := b.DB.ExecContext(ctx, purgeBlacklist, now)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return result.RowsAffected()
}
