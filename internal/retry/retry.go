package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

var ErrAttemptsExhausted = errors.New("max attempts exceeded")

// Policy bounds one logical call. The delay after failed attempt n is BaseDelay * n².
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   1000 * time.Millisecond,
	}
}

// Backoff returns the delay awaited after the failure of attempt n (1-indexed).
// The curve is quadratic (1x, 4x, 9x ...) and carries no jitter.
func (p Policy) Backoff(attempt int) time.Duration {
	if attempt < 1 {
		return 0
	}
	return p.BaseDelay * time.Duration(attempt*attempt)
}

func (p Policy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// FailureFunc observes a failed attempt. delay is zero when no further attempt follows.
type FailureFunc func(attempt int, err error, delay time.Duration)

// Operation is a single attempt of the wrapped call.
type Operation[T any] func(ctx context.Context, attempt int) (T, error)

type Retrier struct {
	policy    Policy
	sleep     SleepFunc
	onFailure FailureFunc
	errorCode func(error) string
	logger    *zerolog.Logger
}

type Option func(*Retrier)

func WithSleep(sleep SleepFunc) Option {
	return func(r *Retrier) {
		r.sleep = sleep
	}
}

func WithOnFailure(fn FailureFunc) Option {
	return func(r *Retrier) {
		r.onFailure = fn
	}
}

// WithErrorCode adds a service error code to the failed-attempt log line.
func WithErrorCode(fn func(error) string) Option {
	return func(r *Retrier) {
		r.errorCode = fn
	}
}

func NewRetrier(policy Policy, logger *zerolog.Logger, opts ...Option) *Retrier {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	r := &Retrier{
		policy: policy,
		sleep:  sleepContext,
		logger: logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Retrier) Policy() Policy {
	return r.policy
}

// Do runs op until it succeeds or the policy's attempts are used up.
// Attempts are strictly sequential: attempt n+1 starts only after attempt n failed
// and its backoff elapsed. The last error is always wrapped in the returned error.
func Do[T any](ctx context.Context, r *Retrier, op Operation[T]) (T, error) {
	var zero T

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	maxAttempts := r.policy.attempts()
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := op(ctx, attempt)
		if err == nil {
			if attempt > 1 {
				r.logger.Info().
					Int("attempt", attempt).
					Int("max_attempts", maxAttempts).
					Msg("call succeeded after retry")
			}
			return result, nil
		}

		lastErr = err

		var delay time.Duration
		if attempt < maxAttempts {
			delay = r.policy.Backoff(attempt)
		}

		r.logFailure(attempt, maxAttempts, delay, err)
		if r.onFailure != nil {
			r.onFailure(attempt, err, delay)
		}

		if attempt == maxAttempts {
			break
		}

		if err := r.sleep(ctx, delay); err != nil {
			return zero, fmt.Errorf("retry aborted after %d attempts: %w: %w", attempt, err, lastErr)
		}
	}

	return zero, fmt.Errorf("%w (%d): %w", ErrAttemptsExhausted, maxAttempts, lastErr)
}

func (r *Retrier) logFailure(attempt, maxAttempts int, delay time.Duration, err error) {
	event := r.logger.Warn().
		Err(err).
		Int("attempt", attempt).
		Int("max_attempts", maxAttempts).
		Dur("delay", delay)

	if r.errorCode != nil {
		if code := r.errorCode(err); code != "" {
			event = event.Str("error_code", code)
		}
	}

	if attempt == maxAttempts {
		event.Msg("attempt failed, no attempts left")
		return
	}
	event.Msg("attempt failed, waiting before retry")
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
