package utils_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vessel-alert-service/internal/utils"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	transient := errors.New("rate limited")
	base := 5 * time.Millisecond

	start := time.Now()
	err := utils.Retry(context.Background(), testLogger(), 5, base, func() error {
		calls++
		if calls < 3 {
			return transient
		}
		return nil
	})
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	// Two waits with doubling delay: base + 2*base.
	assert.GreaterOrEqual(t, elapsed, 3*base)
}

func TestRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	err := utils.Retry(context.Background(), testLogger(), 3, time.Millisecond, func() error {
		calls++
		return errors.New("still failing")
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	calls := 0
	fatal := errors.New("invalid recipient")
	err := utils.Retry(context.Background(), testLogger(), 5, time.Millisecond, func() error {
		calls++
		return utils.Permanent(fatal)
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, fatal)
}

func TestRetryRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := utils.Retry(ctx, testLogger(), 10, 50*time.Millisecond, func() error {
		calls++
		return errors.New("keep going")
	})

	require.Error(t, err)
	assert.Less(t, calls, 10)
}

func TestRetrySingleAttempt(t *testing.T) {
	calls := 0
	err := utils.Retry(context.Background(), testLogger(), 1, time.Millisecond, func() error {
		calls++
		return errors.New("nope")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
