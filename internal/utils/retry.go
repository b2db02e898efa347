package utils

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// Permanent marks err as not worth retrying. Retry returns it immediately.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Retry runs fn up to maxAttempts times, sleeping between attempts with an
// exponential backoff that starts at baseDelay and doubles each time.
// Rate-limit and transport errors are expected to come back plain; anything
// the caller knows is unrecoverable should be wrapped with Permanent.
func Retry(ctx context.Context, logger *logrus.Logger, maxAttempts int, baseDelay time.Duration, fn func() error) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = baseDelay
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxInterval = time.Hour
	bo.MaxElapsedTime = 0 // bounded by attempt count, not wall clock

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := fn()
		if err != nil && attempt < maxAttempts {
			logger.Warnf("Attempt %d/%d failed: %v", attempt, maxAttempts, err)
		}
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(bo, uint64(maxAttempts-1)), ctx))
}
