package usage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, limit int) (*Limiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewLimiter(rdb, limit), mr
}

func TestLimiter_AllowUpToLimit(t *testing.T) {
	l, _ := newTestLimiter(t, 3)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "user-1", now)
		require.NoError(t, err)
		assert.True(t, ok, "session %d should be allowed", i+1)
	}

	ok, err := l.Allow(ctx, "user-1", now)
	require.NoError(t, err)
	assert.False(t, ok, "fourth session of the day is over quota")
}

func TestLimiter_UsersAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(t, 1)
	now := time.Now()
	ctx := context.Background()

	ok, err := l.Allow(ctx, "user-a", now)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.Allow(ctx, "user-b", now)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLimiter_CounterResetsNextDay(t *testing.T) {
	l, _ := newTestLimiter(t, 1)
	ctx := context.Background()
	day1 := time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)
	day2 := day1.Add(2 * time.Hour)

	ok, _ := l.Allow(ctx, "user-1", day1)
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "user-1", day1)
	assert.False(t, ok)

	ok, err := l.Allow(ctx, "user-1", day2)
	require.NoError(t, err)
	assert.True(t, ok, "a new day means a fresh counter")
}

func TestLimiter_Remaining(t *testing.T) {
	l, _ := newTestLimiter(t, 3)
	now := time.Now()
	ctx := context.Background()

	left, err := l.Remaining(ctx, "user-1", now)
	require.NoError(t, err)
	assert.Equal(t, 3, left)

	_, _ = l.Allow(ctx, "user-1", now)
	_, _ = l.Allow(ctx, "user-1", now)

	left, err = l.Remaining(ctx, "user-1", now)
	require.NoError(t, err)
	assert.Equal(t, 1, left)
}

func TestLimiter_NilAllowsEverything(t *testing.T) {
	var l *Limiter
	ok, err := l.Allow(context.Background(), "anyone", time.Now())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLimiter_EmptyUserBypasses(t *testing.T) {
	l, _ := newTestLimiter(t, 1)
	for i := 0; i < 5; i++ {
		ok, err := l.Allow(context.Background(), "", time.Now())
		require.NoError(t, err)
		assert.True(t, ok)
	}
}
