package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/examiz/internal/logging"
	"github.com/abhisek/examiz/internal/profile"
)

// StatsKey is the logical key of the stats blob.
const StatsKey = "stats"

// decodeOrDefault parses a stored blob. A missing or corrupt blob falls back
// to seeded defaults and is logged, never returned as an error.
func decodeOrDefault(data []byte, baseline profile.Profile, logger *logging.Logger) *profile.Stats {
	if len(data) == 0 {
		return profile.DefaultStats(baseline)
	}
	stats, err := profile.Decode(data)
	if err != nil {
		logging.OrNop(logger).Warn("stored stats unreadable, using defaults", "error", err)
		return profile.DefaultStats(baseline)
	}
	return stats
}

// sqliteStatsRepo stores the stats blob as a row in the kv table.
type sqliteStatsRepo struct {
	db     *sql.DB
	logger *logging.Logger
}

func (r *sqliteStatsRepo) Load(ctx context.Context, baseline profile.Profile) (*profile.Stats, error) {
	data, err := r.get(ctx, StatsKey)
	if err != nil {
		return nil, err
	}
	return decodeOrDefault(data, baseline, r.logger), nil
}

func (r *sqliteStatsRepo) Save(ctx context.Context, stats *profile.Stats) error {
	data, err := profile.Encode(stats)
	if err != nil {
		return err
	}
	return r.put(ctx, StatsKey, data)
}

func (r *sqliteStatsRepo) Reset(ctx context.Context, baseline profile.Profile) (*profile.Stats, error) {
	stats := profile.DefaultStats(baseline)
	if err := r.Save(ctx, stats); err != nil {
		return nil, fmt.Errorf("reset stats: %w", err)
	}
	return stats, nil
}

// get returns the value stored under key, or nil if absent.
func (r *sqliteStatsRepo) get(ctx context.Context, key string) ([]byte, error) {
	query, args := builder().Select("value").
		From(entsql.Table(kvTable)).
		Where(entsql.EQ("key", key)).
		Query()

	var data []byte
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", key, err)
	}
	return data, nil
}

// put upserts key in a single statement, so a save is all-or-nothing.
func (r *sqliteStatsRepo) put(ctx context.Context, key string, data []byte) error {
	query, args := builder().Insert(kvTable).
		Columns("key", "value", "updated_at").
		Values(key, data, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
