// Package retry implements the idempotent-intrinsic retry policy
// (spec.md §4.D): exponential backoff with a 0.5s base, an 8s cap, and
// 10% jitter, built on github.com/cenkalti/backoff/v4 the way the
// pack's protocol-server manifests (imulab-go-scim) use it.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy configures a retry run. MaxAttempts bounds the total number
// of tries (including the first); zero means unlimited, bounded only
// by the caller's context deadline.
type Policy struct {
	MaxAttempts int
}

// DefaultPolicy is spec.md §4.D's retry policy with no attempt cap —
// the operation's configured timeout is the only bound.
var DefaultPolicy = Policy{MaxAttempts: 0}

func (p Policy) newBackOff(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = 500 * time.Millisecond
	eb.MaxInterval = 8 * time.Second
	eb.RandomizationFactor = 0.10
	eb.Multiplier = 2.0
	eb.MaxElapsedTime = 0 // bounded by ctx instead

	var bo backoff.BackOff = backoff.WithContext(eb, ctx)
	if p.MaxAttempts > 0 {
		bo = backoff.WithMaxRetries(bo, uint64(p.MaxAttempts-1))
	}
	return bo
}

// Retryable is implemented by errors that should be retried: transient
// transport failures and HTTP 5xx responses. CIM-level errors and
// non-idempotent operation results never satisfy it.
type Retryable interface {
	Retryable() bool
}

// Do runs op under the policy's backoff schedule, retrying only errors
// that implement Retryable and report true. Any other error — or a
// context cancellation — stops retrying immediately.
func Do(ctx context.Context, p Policy, op func() error) error {
	wrapped := func() error {
		err := op()
		if err == nil {
			return nil
		}
		if r, ok := err.(Retryable); ok && r.Retryable() {
			return err
		}
		return backoff.Permanent(err)
	}
	return backoff.Retry(wrapped, p.newBackOff(ctx))
}
