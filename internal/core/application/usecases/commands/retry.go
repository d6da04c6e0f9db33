package commands

import (
	"context"
	"errors"
	"time"

	"routehub/internal/core/ports"

	"github.com/cenkalti/backoff/v4"
)

const maxContentionRetries = 3

// retryOnContention reruns op while it fails with ports.ErrContention. Any
// other error stops immediately and is returned unchanged.
func retryOnContention(ctx context.Context, op func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 10 * time.Millisecond
	policy.MaxInterval = 200 * time.Millisecond

	return backoff.Retry(func() error {
		err := op()
		if err == nil || errors.Is(err, ports.ErrContention) {
			return err
		}
		return backoff.Permanent(err)
	}, backoff.WithContext(backoff.WithMaxRetries(policy, maxContentionRetries), ctx))
}
