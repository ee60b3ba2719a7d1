package commands

import (
	"context"
	"errors"

	"github.com/cenkalti/backoff/v4"

	"warehousing/internal/core/domain/model/inventory"
)

// versionConflictMaxRetries bounds the retries after optimistic version
// conflicts on inventory items.
const versionConflictMaxRetries = 5

// retryOnVersionConflict runs operation, retrying with bounded exponential
// backoff while it loses optimistic-concurrency races on inventory items.
// Every handler that updates the stock projection runs through this, so a
// transient race with a concurrent writer never surfaces to the caller.
// All other errors are permanent.
func retryOnVersionConflict(ctx context.Context, operation func() error) error {
	wrapped := func() error {
		err := operation()
		if err == nil || errors.Is(err, inventory.ErrVersionConflict) {
			return err
		}
		return backoff.Permanent(err)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), versionConflictMaxRetries), ctx)

	return backoff.Retry(wrapped, policy)
}
