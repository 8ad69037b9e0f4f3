package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bancofortis/backend/internal/store"
)

// Clock abstracts time so retry waits can be observed in tests.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time                         { return time.Now() }
func (systemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// RetryPolicy bounds how a transfer reacts to store contention: at most
// MaxAttempts attempts, a fixed Delay between them, and only for errors
// Retryable accepts.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
	Retryable   func(error) bool
}

func DefaultRetryPolicy() RetryPolicy {
	return NewRetryPolicy(5, time.Second)
}

// NewRetryPolicy retries store contention with the given bounds.
func NewRetryPolicy(maxAttempts int, delay time.Duration) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: maxAttempts,
		Delay:       delay,
		Retryable:   store.IsContention,
	}
}

func (p RetryPolicy) shouldRetry(err error) bool {
	return p.Retryable != nil && p.Retryable(err)
}

// wait blocks for Delay or until ctx is done.
func (p RetryPolicy) wait(ctx context.Context, clock Clock) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-clock.After(p.Delay):
		return nil
	}
}

// do runs fn until it succeeds, fails with an error the policy does not
// retry, or MaxAttempts contention failures have happened. The last case
// returns ErrRetryExhausted wrapping the final error.
func (p RetryPolicy) do(ctx context.Context, clock Clock, tag string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		if !p.shouldRetry(err) {
			log.Printf("%s Aborted on attempt %d: %v", tag, attempt, err)
			return err
		}

		lastErr = err
		log.Printf("%s Contention on attempt %d/%d: %v", tag, attempt, p.MaxAttempts, err)
		if attempt == p.MaxAttempts {
			break
		}
		if err := p.wait(ctx, clock); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w after %d attempts: %w", ErrRetryExhausted, p.MaxAttempts, lastErr)
}
