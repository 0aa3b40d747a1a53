package poll

import (
	"context"
	"errors"
	"time"
)

// FakeSleeper records sleeps without blocking.
type FakeSleeper struct {
	// Sleeps contains every requested duration, in order.
	Sleeps []time.Duration

	// Limit, if > 0, makes Sleep fail with ErrLimit once exceeded.
	// Tests use it to stop a wait that would otherwise never end.
	Limit int
}

// ErrLimit is returned once FakeSleeper.Limit sleeps have happened.
var ErrLimit = errors.New("poll: fake sleep limit reached")

// Sleep records d. It still honours cancellation.
func (f *FakeSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.Limit > 0 && len(f.Sleeps) >= f.Limit {
		return ErrLimit
	}
	f.Sleeps = append(f.Sleeps, d)
	return nil
}

// Total returns the sum of recorded sleeps.
func (f *FakeSleeper) Total() time.Duration {
	var total time.Duration
	for _, d := range f.Sleeps {
		total += d
	}
	return total
}

// Count returns how many sleeps of exactly d were recorded.
func (f *FakeSleeper) Count(d time.Duration) int {
	n := 0
	for _, s := range f.Sleeps {
		if s == d {
			n++
		}
	}
	return n
}
