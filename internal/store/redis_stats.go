package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/abhisek/examiz/internal/logging"
	"github.com/abhisek/examiz/internal/profile"
)

// DefaultRedisKey is the key used when none is configured.
const DefaultRedisKey = "examiz:stats"

// RedisStatsRepo stores the stats blob under a single Redis key.
type RedisStatsRepo struct {
	rdb    *goredis.Client
	key    string
	logger *logging.Logger
}

// NewRedisStatsRepo connects to addr and verifies the connection.
func NewRedisStatsRepo(ctx context.Context, addr, key string, logger *logging.Logger) (*RedisStatsRepo, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	if key == "" {
		key = DefaultRedisKey
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStatsRepo{
		rdb:    rdb,
		key:    key,
		logger: logging.OrNop(logger).With("component", "redis_stats"),
	}, nil
}

func (r *RedisStatsRepo) Load(ctx context.Context, baseline profile.Profile) (*profile.Stats, error) {
	data, err := r.rdb.Get(ctx, r.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return profile.DefaultStats(baseline), nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", r.key, err)
	}
	return decodeOrDefault(data, baseline, r.logger), nil
}

func (r *RedisStatsRepo) Save(ctx context.Context, stats *profile.Stats) error {
	data, err := profile.Encode(stats)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}

func (r *RedisStatsRepo) Reset(ctx context.Context, baseline profile.Profile) (*profile.Stats, error) {
	stats := profile.DefaultStats(baseline)
	if err := r.Save(ctx, stats); err != nil {
		return nil, fmt.Errorf("reset stats: %w", err)
	}
	return stats, nil
}

// Close releases the Redis connection pool.
func (r *RedisStatsRepo) Close() error {
	return r.rdb.Close()
}
