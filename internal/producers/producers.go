// Package producers defines the boundary between the pipeline and the
// extraction side. Producers run concurrently under the orchestrator's
// fan-out and each one owns exactly one category artifact in the store;
// the pipeline never reads an artifact before its producer returns.
package producers

import (
	"context"
	"time"

	"github.com/factbench/verdiq/pkg/artifacts"
	verrors "github.com/factbench/verdiq/pkg/errors"
)

// Producer writes one category artifact into the store for the given
// source identifier.
type Producer interface {
	// Category identifies the artifact this producer owns.
	Category() artifacts.Category

	// Produce extracts and persists the artifact. It returns only
	// after the artifact file is fully written.
	Produce(ctx context.Context, source string) error
}

// BackoffFunc returns the delay before the given retry attempt.
// Attempts are numbered from 1.
type BackoffFunc func(attempt int) time.Duration

// RetryPolicy controls how often a failing producer is retried.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     BackoffFunc
}

// DefaultRetryPolicy retries twice with linear backoff.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Backoff: func(attempt int) time.Duration {
			return time.Duration(attempt) * time.Second
		},
	}
}

// Run invokes p.Produce under the retry policy. Missing-artifact and
// malformed-artifact errors are not retried; they describe the source
// data, not a transient condition. Context cancellation stops retries
// immediately.
func Run(ctx context.Context, p Producer, source string, policy RetryPolicy) error {
	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = p.Produce(ctx, source); err == nil {
			return nil
		}
		if verrors.IsArtifactNotFound(err) || verrors.IsArtifactMalformed(err) {
			return err
		}
		if attempt == attempts {
			break
		}

		var delay time.Duration
		if policy.Backoff != nil {
			delay = policy.Backoff(attempt)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return err
}
