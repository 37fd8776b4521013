// Package clock provides the wall-clock and sleep implementations used outside tests.
package clock

import (
	"context"
	"time"
)

// System reads time.Now.
type System struct{}

func (System) Now() time.Time {
	return time.Now()
}

// Sleeper waits on a timer and honours cancellation.
type Sleeper struct{}

func (Sleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
