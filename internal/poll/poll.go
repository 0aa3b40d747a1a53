// Package poll provides the busy-wait primitive every hardware wait is built
// on. A wait has no timeout: if the hardware never becomes ready the caller
// blocks until the process is stopped.
package poll

import (
	"context"
	"time"
)

// Sleeper blocks for a fixed duration.
type Sleeper interface {
	// Sleep returns early with ctx.Err() if ctx is cancelled.
	Sleep(ctx context.Context, d time.Duration) error
}

// RealSleeper sleeps on the wall clock.
type RealSleeper struct{}

// Sleep waits for d or until ctx is done.
func (RealSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Until polls cond every interval until it reports true.
// An error from cond ends the wait and is returned as is.
func Until(ctx context.Context, s Sleeper, interval time.Duration, cond func() (bool, error)) error {
	for {
		ok, err := cond()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if err := s.Sleep(ctx, interval); err != nil {
			return err
		}
	}
}

// Not inverts a condition.
func Not(cond func() (bool, error)) func() (bool, error) {
	return func() (bool, error) {
		ok, err := cond()
		return !ok, err
	}
}
