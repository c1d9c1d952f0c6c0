package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTransient = errors.New("connection reset")
var errFatal = errors.New("invalid request")

func testPolicy(retryable func(error) bool) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Retryable:   retryable,
	}
}

func TestRetryPolicySucceedsAfterTransientFailures(t *testing.T) {
	policy := testPolicy(func(err error) bool { return errors.Is(err, errTransient) })

	attempts := 0
	err := policy.Do(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return errTransient
		}
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestRetryPolicyExhaustionReturnsOriginalError(t *testing.T) {
	policy := testPolicy(func(err error) bool { return errors.Is(err, errTransient) })

	attempts := 0
	err := policy.Do(context.Background(), func() error {
		attempts++
		return errTransient
	})

	if !errors.Is(err, errTransient) {
		t.Fatalf("error = %v, want errTransient", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestRetryPolicyDoesNotRetryFatalErrors(t *testing.T) {
	policy := testPolicy(func(err error) bool { return errors.Is(err, errTransient) })

	attempts := 0
	err := policy.Do(context.Background(), func() error {
		attempts++
		return errFatal
	})

	if !errors.Is(err, errFatal) {
		t.Fatalf("error = %v, want errFatal", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}
