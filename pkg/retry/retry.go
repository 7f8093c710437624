// Package retry runs an operation a bounded number of times with a fixed
// delay between failed attempts.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/storefront/pkg/metrics"
	"github.com/cenkalti/backoff/v5"
)

const (
	DefaultMaxAttempts = 3
	DefaultDelay       = 2 * time.Second
)

// ExhaustedMessage is logged once when every attempt has failed.
const ExhaustedMessage = "Max retries reached. Operation failed."

// ErrExhausted wraps the last failure of an operation that ran out of attempts.
var ErrExhausted = errors.New("max retries reached")

// Config bounds the executor.
type Config struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultConfig returns three attempts two seconds apart.
func DefaultConfig() Config {
	return Config{MaxAttempts: DefaultMaxAttempts, Delay: DefaultDelay}
}

func (c Config) normalized() Config {
	if c.MaxAttempts < 1 {
		c.MaxAttempts = 1
	}
	if c.Delay < 0 {
		c.Delay = 0
	}
	return c
}

// Result is the outcome of an operation run through the executor.
// Value is the zero value whenever Err is set.
type Result[T any] struct {
	Value    T
	Err      error
	Attempts int
}

// OK reports whether the operation eventually succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Cause returns the failure, if any.
func (r Result[T]) Cause() error {
	return r.Err
}

// Operation is a single attempt.
type Operation[T any] func(ctx context.Context) (T, error)

// NotifyFunc observes every scheduled retry: the attempt that just failed,
// its error and the delay before the next one.
type NotifyFunc func(attempt int, err error, delay time.Duration)

// Executor holds the retry policy shared by the event listeners.
type Executor struct {
	cfg     Config
	logger  *slog.Logger
	metrics metrics.Recorder
	notify  NotifyFunc
}

// Option configures an Executor.
type Option func(*Executor)

// WithConfig overrides the attempt bound and delay.
func WithConfig(cfg Config) Option {
	return func(e *Executor) {
		e.cfg = cfg.normalized()
	}
}

// WithMetrics reports attempts and exhaustion to r.
func WithMetrics(r metrics.Recorder) Option {
	return func(e *Executor) {
		if r != nil {
			e.metrics = r
		}
	}
}

// WithNotify registers fn to be called before every delay.
func WithNotify(fn NotifyFunc) Option {
	return func(e *Executor) {
		e.notify = fn
	}
}

// New creates an executor with the default policy unless overridden.
func New(logger *slog.Logger, opts ...Option) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Executor{
		cfg:     DefaultConfig(),
		logger:  logger.With("component", "retry"),
		metrics: metrics.Nop{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the effective policy.
func (e *Executor) Config() Config {
	return e.cfg
}

// Permanent marks err as not worth retrying. The executor stops at once
// and does not count the failure as exhaustion.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return backoff.Permanent(err)
}

// Do runs op until it succeeds or the executor's attempts are used up.
// It never returns an error directly: failures are reported in the Result.
func Do[T any](ctx context.Context, exec *Executor, name string, op Operation[T]) Result[T] {
	if exec == nil {
		exec = New(nil)
	}
	log := exec.logger.With("operation", name)

	var (
		attempts  int
		permanent bool
	)
	attempt := func() (T, error) {
		attempts++
		v, err := op(ctx)
		if err != nil {
			var perr *backoff.PermanentError
			permanent = errors.As(err, &perr)
		}
		return v, err
	}
	onRetry := func(err error, next time.Duration) {
		log.Warn("🔁 [RETRY] Attempt failed, retrying",
			"attempt", attempts,
			"max_attempts", exec.cfg.MaxAttempts,
			"delay", next,
			"error", err,
		)
		exec.metrics.RetryAttempt(name)
		if exec.notify != nil {
			exec.notify(attempts, err, next)
		}
	}

	value, err := backoff.Retry(ctx, attempt,
		backoff.WithBackOff(backoff.NewConstantBackOff(exec.cfg.Delay)),
		backoff.WithMaxTries(uint(exec.cfg.MaxAttempts)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(onRetry),
	)
	if err == nil {
		return Result[T]{Value: value, Attempts: attempts}
	}

	var zero T
	switch {
	case permanent:
		var perr *backoff.PermanentError
		if errors.As(err, &perr) {
			err = perr.Unwrap()
		}
		log.Error("❌ [ERROR] Operation failed with a non-retryable error",
			"attempts", attempts,
			"error", err,
		)
		return Result[T]{Value: zero, Err: err, Attempts: attempts}
	case attempts < exec.cfg.MaxAttempts:
		log.Warn("⚠️ [CANCELLED] Operation abandoned before its last attempt",
			"attempts", attempts,
			"error", err,
		)
		return Result[T]{Value: zero, Err: err, Attempts: attempts}
	default:
		log.Error(ExhaustedMessage, "attempts", attempts, "error", err)
		exec.metrics.RetryExhausted(name)
		return Result[T]{
			Value:    zero,
			Err:      fmt.Errorf("%w: %w", ErrExhausted, err),
			Attempts: attempts,
		}
	}
}
