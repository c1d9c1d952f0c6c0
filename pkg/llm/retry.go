package llm

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy retries an operation with exponential backoff. Only errors the
// Retryable predicate accepts are retried; everything else propagates on the
// first attempt. After MaxAttempts the last error propagates unchanged.
type RetryPolicy struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Retryable   func(error) bool
}

func defaultRetryPolicy(retryable func(error) bool) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		InitialWait: 1 * time.Second,
		MaxWait:     30 * time.Second,
		Retryable:   retryable,
	}
}

func (p RetryPolicy) Do(ctx context.Context, op func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.InitialWait
	bo.MaxInterval = p.MaxWait

	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	wrapped := func() error {
		err := op()
		if err != nil && p.Retryable != nil && !p.Retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	return backoff.Retry(wrapped, backoff.WithContext(backoff.WithMaxRetries(bo, uint64(attempts-1)), ctx))
}

// isNetworkError reports whether err looks like a connection-level failure
// worth retrying regardless of provider.
func isNetworkError(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr)
}
