package contents

import (
	"context"
	"errors"
	"time"
)

const (
	DefaultMaxRetries = 2
	DefaultRetryDelay = time.Second
)

// RetryPolicy is a fixed-delay retry budget. MaxRetries counts attempts
// after the first one.
type RetryPolicy struct {
	MaxRetries int
	Delay      time.Duration
}

// DefaultRetryPolicy returns two retries one second apart.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: DefaultMaxRetries, Delay: DefaultRetryDelay}
}

// Attempts is the total number of requests the policy allows.
func (p RetryPolicy) Attempts() int {
	if p.MaxRetries < 0 {
		return 1
	}
	return p.MaxRetries + 1
}

// IsRetryable reports whether a failed attempt is worth repeating. Status
// errors, transport errors and decode errors all are; cancellation is not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
