package repository

import (
	"context"
	"time"
)

// Delay simulates the round trip of a remote backend. It must return early
// with ctx.Err() when the context is done.
type Delay func(ctx context.Context) error

// DefaultLatency is the simulated round trip used when no delay is configured.
const DefaultLatency = 500 * time.Millisecond

// FixedDelay waits d before every operation. A non-positive d disables the wait.
func FixedDelay(d time.Duration) Delay {
	if d <= 0 {
		return NoDelay
	}
	return func(ctx context.Context) error {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// NoDelay returns immediately unless ctx is already done.
func NoDelay(ctx context.Context) error {
	return ctx.Err()
}
