package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/models"
	"github.com/redis/go-redis/v9"
)

const blacklistKeyPrefix = "notes:blacklist:"

// redisBlacklist stores each blacklisted token id as a key that expires
// together with the token, so PurgeExpired has nothing to do.
type redisBlacklist struct {
	client *redis.Client
}

// NewRedisClient connects to Redis and pings it.
func NewRedisClient(ctx context.Context, cfg config.Redis, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisClient").Msg("error connecting redis (ping)")
		_ = client.Close()
		return nil, fmt.Errorf("error connecting redis: %w", err)
	}
	log.Info().Str("func", "NewRedisClient").Str("address", cfg.Address).Msg("connected to redis successfully")

	return client, nil
}

// NewRedisBlacklist constructs a [TokenBlacklist] backed by Redis.
func NewRedisBlacklist(client *redis.Client, logger *logger.Logger) TokenBlacklist {
	logger.Debug().Msg("creating redis token blacklist")
	return &redisBlacklist{client: client}
}

func (b *redisBlacklist) Add(ctx context.Context, token models.BlacklistedToken) error {
	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		// already unusable, nothing to remember
		return nil
	}

	added, err := b.client.SetNX(ctx, blacklistKeyPrefix+token.JTI, token.UserID, ttl).Result()
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*redisBlacklist.Add").
			Int64("user_id", token.UserID).
			Msg("failed to blacklist token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if !added {
		return ErrTokenAlreadyBlacklisted
	}

	return nil
}

func (b *redisBlacklist) Contains(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return n > 0, nil
}

func (b *redisBlacklist) PurgeExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}
