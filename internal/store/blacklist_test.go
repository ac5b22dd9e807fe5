package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgerrcode"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresBlacklist_Add(t *testing.T) {
	db, mock := newTestDB(t)
	bl := NewPostgresBlacklist(db, logger.Nop())
	exp := time.Now().Add(time.Hour)

	mock.ExpectExec("INSERT INTO token_blacklist").
		WithArgs("jti-1", int64(3), exp).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO token_blacklist").
		WithArgs("jti-1", int64(3), exp).
		WillReturnError(pgError(pgerrcode.UniqueViolation))
	mock.ExpectExec("INSERT INTO token_blacklist").
		WillReturnError(errors.New("boom"))

	token := models.BlacklistedToken{JTI: "jti-1", UserID: 3, ExpiresAt: exp}
	require.NoError(t, bl.Add(context.Background(), token))
	assert.ErrorIs(t, bl.Add(context.Background(), token), ErrTokenAlreadyBlacklisted)
	assert.ErrorIs(t, bl.Add(context.Background(), token), ErrExecutingStatement)
}

func TestPostgresBlacklist_Contains(t *testing.T) {
	db, mock := newTestDB(t)
	bl := NewPostgresBlacklist(db, logger.Nop())

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("jti-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("jti-2").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("jti-3").
		WillReturnError(errors.New("boom"))

	ok, err := bl.Contains(context.Background(), "jti-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = bl.Contains(context.Background(), "jti-2")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = bl.Contains(context.Background(), "jti-3")
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestPostgresBlacklist_PurgeExpired(t *testing.T) {
	db, mock := newTestDB(t)
	bl := NewPostgresBlacklist(db, logger.Nop())
	now := time.Now()

	mock.ExpectExec("DELETE FROM token_blacklist WHERE expires_at").
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := bl.PurgeExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func newTestRedisBlacklist(t *testing.T) (TokenBlacklist, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisBlacklist(client, logger.Nop()), mr
}

func TestRedisBlacklist_AddContains(t *testing.T) {
	bl, mr := newTestRedisBlacklist(t)
	ctx := context.Background()

	token := models.BlacklistedToken{JTI: "jti-1", UserID: 3, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, bl.Add(ctx, token))
	assert.ErrorIs(t, bl.Add(ctx, token), ErrTokenAlreadyBlacklisted)

	ok, err := bl.Contains(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = bl.Contains(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, ok)

	// entries expire together with the token
	mr.FastForward(2 * time.Hour)
	ok, err = bl.Contains(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisBlacklist_ExpiredTokenIgnored(t *testing.T) {
	bl, mr := newTestRedisBlacklist(t)

	err := bl.Add(context.Background(), models.BlacklistedToken{JTI: "old", ExpiresAt: time.Now().Add(-time.Minute)})
	require.NoError(t, err)
	assert.False(t, mr.Exists(blacklistKeyPrefix+"old"))

	n, err := bl.PurgeExpired(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRedisBlacklist_ConnectionError(t *testing.T) {
	bl, mr := newTestRedisBlacklist(t)
	mr.Close()

	_, err := bl.Contains(context.Background(), "jti")
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), redisConfig(mr.Addr()), logger.Nop())
	require.NoError(t, err)
	require.NoError(t, client.Close())

	mr.Close()
	_, err = NewRedisClient(context.Background(), redisConfig(mr.Addr()), logger.Nop())
	assert.Error(t, err)
}

func redisConfig(addr string) config.Redis {
	return config.Redis{Address: addr}
}
