package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/simplesurance/upstream-updater/internal/updaterr"
)

func TestRetryerDefaultTimeout(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	r := NewRetryer(WithTimeout(time.Second))
	r.backoffInitialInterval = 100 * time.Millisecond

	err := r.Run(context.Background(), func(context.Context) error {
		return updaterr.NewRetryableAnytimeError(errors.New("err"))
	}, nil)

	assert.ErrorIsf(t, err, context.DeadlineExceeded, "err: %+v", err)
}

func TestRetryAfterInThePast(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	r := NewRetryer(WithTimeout(2 * time.Second))
	r.backoffInitialInterval = 100 * time.Millisecond

	var retryTimes []time.Time

	err := r.Run(context.Background(), func(context.Context) error {
		retryTimes = append(retryTimes, time.Now())
		return updaterr.NewRetryableError(errors.New("err"), time.Now().Add(-time.Second))
	}, nil)

	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.GreaterOrEqual(t, len(retryTimes), 2)

	for i := 1; i < len(retryTimes); i++ {
		d := retryTimes[i].Sub(retryTimes[i-1])
		require.GreaterOrEqualf(t, d, r.minInterval(),
			"time between retry %d and %d is %s, expected >=%s",
			i-1, i, d, r.minInterval(),
		)
	}
}

func TestRetryAfterTimeoutReturnsImmediately(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	r := NewRetryer(WithTimeout(time.Minute))

	var calls atomic.Int32
	start := time.Now()

	err := r.Run(context.Background(), func(context.Context) error {
		calls.Inc()
		return updaterr.NewRetryableError(errors.New("rate limited"), time.Now().Add(time.Hour))
	}, nil)

	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Less(t, time.Since(start), 10*time.Second)

	var retryErr *updaterr.RetryableError
	assert.ErrorAs(t, err, &retryErr)
}

func TestNonRetryableErrorIsReturned(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	r := NewRetryer()
	expectedErr := errors.New("permanent")

	var calls atomic.Int32
	err := r.Run(context.Background(), func(context.Context) error {
		calls.Inc()
		return expectedErr
	}, nil)

	assert.Equal(t, expectedErr, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSucceedsAfterRetry(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	r := NewRetryer(WithTimeout(5 * time.Second))
	r.backoffInitialInterval = 50 * time.Millisecond

	var calls atomic.Int32
	err := r.Run(context.Background(), func(context.Context) error {
		if calls.Inc() < 3 {
			return updaterr.NewRetryableAnytimeError(errors.New("502"))
		}
		return nil
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRunCancelled(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	r := NewRetryer()

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	err := r.Run(ctx, func(context.Context) error {
		cancelFn()
		return updaterr.NewRetryableAnytimeError(errors.New("err"))
	}, nil)

	assert.ErrorIs(t, err, context.Canceled)
}
