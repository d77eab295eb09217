package sync

import (
	"context"
	"math/rand"
	"time"
)

// RetryPolicy bounds the retry loop for retriable request failures.
// Backoff grows exponentially from InitialBackoff and the loop stops at
// whichever of MaxRetries or MaxElapsed triggers first.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int

	// InitialBackoff is the wait before the first retry.
	InitialBackoff time.Duration

	// BackoffFactor is the exponential backoff multiplier.
	BackoffFactor float64

	// MaxElapsed is the ceiling on total time across all attempts,
	// including backoff waits.
	MaxElapsed time.Duration

	// Jitter adds up to 100ms of random delay to each backoff wait when
	// set, to avoid retry storms against a struggling API.
	Jitter bool
}

// DefaultRetryPolicy returns the retry policy used against the Sharpi API:
// up to 3 retries with 1s/2s/4s backoff, never exceeding 15s in total.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:     3,
		InitialBackoff: 1 * time.Second,
		BackoffFactor:  2.0,
		MaxElapsed:     15 * time.Second,
		Jitter:         true,
	}
}

// Do runs fn, retrying while it returns a retriable RequestError and the
// policy's budgets allow. The last observed error is returned once the
// budget is exhausted or a non-retriable failure occurs. The backoff wait
// is interruptible by ctx.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) *RequestError) *RequestError {
	start := time.Now()

	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if !err.Retriable() || attempt >= p.MaxRetries {
			return err
		}

		delay := p.backoff(attempt)
		if time.Since(start)+delay > p.MaxElapsed {
			return err
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return err
		}
	}
}

// backoff returns the wait before retry number attempt+1.
func (p RetryPolicy) backoff(attempt int) time.Duration {
	delay := float64(p.InitialBackoff)
	for i := 0; i < attempt; i++ {
		delay *= p.BackoffFactor
	}
	result := time.Duration(delay)
	if p.Jitter {
		result += time.Duration(rand.Int63n(101)) * time.Millisecond
	}
	return result
}
