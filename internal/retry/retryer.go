// Package retry runs operations repeatedly while they fail with a
// updaterr.RetryableError.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff"
	"go.uber.org/zap"

	"github.com/simplesurance/upstream-updater/internal/logfields"
	"github.com/simplesurance/upstream-updater/internal/updaterr"
)

const loggerName = "retryer"

const (
	DefTimeout                    = 10 * time.Minute
	defBackoffInitialInterval     = 5 * time.Second
	defBackoffRandomizationFactor = backoff.DefaultRandomizationFactor
)

// Retryer executes a function repeatedly until it was successful or a cancel
// condition happened.
type Retryer struct {
	logger *zap.Logger

	defTimeout                 time.Duration
	backoffInitialInterval     time.Duration
	backoffRandomizationFactor float64
}

// Option customizes a Retryer.
type Option func(*Retryer)

// WithTimeout sets the duration after that Run gives up retrying.
func WithTimeout(d time.Duration) Option {
	return func(r *Retryer) {
		r.defTimeout = d
	}
}

func NewRetryer(opts ...Option) *Retryer {
	r := Retryer{
		logger:                     zap.L().Named(loggerName),
		defTimeout:                 DefTimeout,
		backoffInitialInterval:     defBackoffInitialInterval,
		backoffRandomizationFactor: defBackoffRandomizationFactor,
	}

	for _, opt := range opts {
		opt(&r)
	}

	return &r
}

// Run executes fn until it was successful, it returned an error that
// does not wrap updaterr.RetryableError, the retry timeout expired or the
// execution was aborted via the context.
func (r *Retryer) Run(ctx context.Context, fn func(context.Context) error, logF []zap.Field) error {
	var tryCnt uint

	ctx, cancelFn := context.WithTimeout(ctx, r.defTimeout)
	defer cancelFn()

	deadline, _ := ctx.Deadline()

	retryTimer := time.NewTimer(0)
	defer retryTimer.Stop()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.backoffInitialInterval
	bo.RandomizationFactor = r.backoffRandomizationFactor
	bo.MaxElapsedTime = 0

	for {
		tryCnt++
		logger := r.logger.With(logF...).With(zap.Uint("try_count", tryCnt))

		select {
		case <-ctx.Done():
			logger.Info(
				"operation cancelled",
				logfields.Event("retry_operation_cancelled"),
				zap.Error(ctx.Err()),
			)

			return ctx.Err()

		case <-retryTimer.C:
			err := fn(ctx)
			if err == nil {
				if tryCnt > 1 {
					logger.Debug(
						"operation succeeded after retrying",
						logfields.Event("retry_operation_succeeded"),
					)
				}

				return nil
			}

			logger = logger.With(zap.Error(err))

			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}

			var retryError *updaterr.RetryableError
			if !errors.As(err, &retryError) {
				return err
			}

			if retryError.After.After(deadline) {
				logger.Warn(
					"operation failed, next possible retry time is after timeout expiration",
					logfields.Event("retry_operation_failed"),
					zap.Time("earliest_allowed_retry", retryError.After),
				)

				return fmt.Errorf("retry not possible before timeout expiration: %w", err)
			}

			var retryIn time.Duration
			if retryError.After.IsZero() {
				retryIn = bo.NextBackOff()
			} else {
				retryIn = time.Until(retryError.After)
				if minRetryIn := r.minInterval(); retryIn < minRetryIn {
					retryIn = minRetryIn
				}
			}

			retryTimer.Reset(retryIn)

			logger.Info(
				"operation failed, retry scheduled",
				logfields.Event("retry_scheduled"),
				zap.Duration("retry_in", retryIn),
				zap.Duration("age", bo.GetElapsedTime()),
				zap.Duration("retry_timeout", r.defTimeout),
			)
		}
	}
}

func (r *Retryer) minInterval() time.Duration {
	return time.Duration(float64(r.backoffInitialInterval) * (1 - r.backoffRandomizationFactor))
}
