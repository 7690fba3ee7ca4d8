package retry

import (
	"context"
	"errors"
	"testing"
)

type retryableErr struct{ retryable bool }

func (e retryableErr) Error() string  { return "boom" }
func (e retryableErr) Retryable() bool { return e.retryable }

func TestDoRetriesRetryableErrors(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), Policy{MaxAttempts: 3}, func() error {
		attempts++
		if attempts < 3 {
			return retryableErr{retryable: true}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestDoStopsOnNonRetryableError(t *testing.T) {
	attempts := 0
	sentinel := errors.New("non-retryable")
	err := Do(context.Background(), DefaultPolicy, func() error {
		attempts++
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Errorf("expected sentinel error to propagate, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (no retry for non-retryable error)", attempts)
	}
}

func TestDoRespectsMaxAttempts(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), Policy{MaxAttempts: 2}, func() error {
		attempts++
		return retryableErr{retryable: true}
	})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}
