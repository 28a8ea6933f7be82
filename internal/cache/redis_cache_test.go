package cache

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	QuizID uint   `json:"quiz_id"`
	Title  string `json:"title"`
}

func newTestCache(t *testing.T) (CacheService, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewRedisCache(client, logger), mr
}

func TestRedisCache_SetGetRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "quiz:7", snapshot{QuizID: 7, Title: "Geography"}, time.Minute))

	var got snapshot
	require.NoError(t, c.Get(ctx, "quiz:7", &got))
	assert.Equal(t, uint(7), got.QuizID)
	assert.Equal(t, "Geography", got.Title)
}

func TestRedisCache_MissAndExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	var got snapshot
	assert.ErrorIs(t, c.Get(ctx, "quiz:missing", &got), ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "quiz:7", snapshot{QuizID: 7}, time.Minute))
	mr.FastForward(2 * time.Minute)
	assert.ErrorIs(t, c.Get(ctx, "quiz:7", &got), ErrCacheMiss)
}

func TestRedisCache_CorruptEntryBecomesMiss(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("quiz:7", "{not json"))

	var got snapshot
	assert.ErrorIs(t, c.Get(ctx, "quiz:7", &got), ErrCacheMiss)
	assert.False(t, mr.Exists("quiz:7"), "corrupt entries are dropped")
}

func TestRedisCache_DeletePattern(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "quiz:1", snapshot{QuizID: 1}, 0))
	require.NoError(t, c.Set(ctx, "quiz:2", snapshot{QuizID: 2}, 0))
	require.NoError(t, c.Set(ctx, "result:1", snapshot{QuizID: 1}, 0))

	require.NoError(t, c.DeletePattern(ctx, "quiz:*"))

	assert.False(t, mr.Exists("quiz:1"))
	assert.False(t, mr.Exists("quiz:2"))
	assert.True(t, mr.Exists("result:1"))
}
