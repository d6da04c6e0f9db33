package ports

import (
	"context"
	"time"
)

// PasswordHasher turns a plain password into the stored hash.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// AttemptLimiter counts attempts per key inside a window. Allow reports false
// once the limit for key is exceeded.
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Clock is the time source of the use cases.
type Clock interface {
	Now() time.Time
}
