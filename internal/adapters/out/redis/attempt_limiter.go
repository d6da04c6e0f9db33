package redis

import (
	"context"
	"fmt"
	"time"

	"routehub/internal/pkg/errs"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "routehub:attempts:"

// A fixed window counter: the first hit starts the window.
var incrementScript = goredis.NewScript(`
	local count = redis.call('INCR', KEYS[1])
	if count == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	return count
`)

// AttemptLimiter implements ports.AttemptLimiter on a shared Redis so the
// limit holds across instances. A nil client allows every attempt.
type AttemptLimiter struct {
	client      *goredis.Client
	maxAttempts int64
	window      time.Duration
}

func NewAttemptLimiter(client *goredis.Client, maxAttempts int, window time.Duration) (*AttemptLimiter, error) {
	if maxAttempts <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("maxAttempts", maxAttempts, 1, "unbounded")
	}
	if window <= 0 {
		return nil, errs.NewValueIsInvalidError("window")
	}

	return &AttemptLimiter{
		client:      client,
		maxAttempts: int64(maxAttempts),
		window:      window,
	}, nil
}

func (l *AttemptLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.client == nil {
		return true, nil
	}

	count, err := incrementScript.Run(ctx, l.client, []string{keyPrefix + key}, l.window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("count attempt for %s: %w", key, err)
	}
	return count <= l.maxAttempts, nil
}
