// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Storages aggregates every repository used by the service layer.
type Storages struct {
	UserRepository UserRepository
	NoteRepository NoteRepository
	TokenBlacklist TokenBlacklist

	db    *DB
	redis *redis.Client
}

// NewStorages connects to PostgreSQL, applies migrations and, when a Redis
// address is configured, keeps the token blacklist in Redis.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		_ = db.Close()
		return nil, err
	}

	s := &Storages{
		UserRepository: NewUserRepository(db, log),
		NoteRepository: NewNoteRepository(db, log),
		db:             db,
	}

	if cfg.Redis.Address == "" {
		s.TokenBlacklist = NewPostgresBlacklist(db, log)
		return s, nil
	}

	client, err := NewRedisClient(ctx, cfg.Redis, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s.redis = client
	s.TokenBlacklist = NewRedisBlacklist(client, log)

	return s, nil
}

// Close releases the database and Redis connections.
func (s *Storages) Close() error {
	var errs []error
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing redis: %w", err))
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing database: %w", err))
		}
	}
	return errors.Join(errs...)
}
