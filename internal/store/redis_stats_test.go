package store

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examiz/internal/logging"
	"github.com/abhisek/examiz/internal/profile"
)

// Runs against a live server only when EXAMIZ_TEST_REDIS_ADDR is set.
func TestRedisStatsRepo(t *testing.T) {
	addr := os.Getenv("EXAMIZ_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("EXAMIZ_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	key := "examiz:test:" + uuid.NewString()

	repo, err := NewRedisStatsRepo(ctx, addr, key, logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.rdb.Del(context.Background(), key)
		repo.Close()
	})

	got, err := repo.Load(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, profile.DefaultStats(nil), got)

	stats := profile.DefaultStats(nil)
	stats.RecordBest(4, 6)
	require.NoError(t, repo.Save(ctx, stats))
	got, err = repo.Load(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, stats.Best, got.Best)

	require.NoError(t, repo.rdb.Set(ctx, key, "garbage", 0).Err())
	got, err = repo.Load(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, profile.DefaultStats(nil), got)
}

func TestNewRedisStatsRepo_RequiresAddr(t *testing.T) {
	_, err := NewRedisStatsRepo(context.Background(), "", "", nil)
	assert.Error(t, err)
}
