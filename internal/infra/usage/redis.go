package usage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrQuotaExceeded indicates the user spent today's free-tier sessions.
var ErrQuotaExceeded = errors.New("daily session limit reached")

// Limiter counts analysis sessions per user per day in redis, backing the
// free-tier quota. A nil Limiter allows everything.
type Limiter struct {
	rdb   *redis.Client
	limit int
}

func NewLimiter(rdb *redis.Client, dailyLimit int) *Limiter {
	return &Limiter{rdb: rdb, limit: dailyLimit}
}

// Allow increments today's counter for the user and reports whether the
// session is still within quota. Counter keys expire after 48h.
func (l *Limiter) Allow(ctx context.Context, userID string, now time.Time) (bool, error) {
	if l == nil || userID == "" {
		return true, nil
	}
	key := fmt.Sprintf("usage:sessions:%s:%s", userID, now.UTC().Format("2006-01-02"))

	n, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		// first session of the day sets the expiry
		if err := l.rdb.Expire(ctx, key, 48*time.Hour).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(l.limit), nil
}

// Remaining reports how many sessions the user has left today.
func (l *Limiter) Remaining(ctx context.Context, userID string, now time.Time) (int, error) {
	if l == nil || userID == "" {
		return 0, nil
	}
	key := fmt.Sprintf("usage:sessions:%s:%s", userID, now.UTC().Format("2006-01-02"))
	n, err := l.rdb.Get(ctx, key).Int()
	if err != nil && err != redis.Nil {
		return 0, err
	}
	left := l.limit - n
	if left < 0 {
		left = 0
	}
	return left, nil
}
