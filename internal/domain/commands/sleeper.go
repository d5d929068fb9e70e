package commands

import (
	"context"
	"time"
)

// Sleeper blocks the crawl for a fixed cooldown.
type Sleeper interface {
	Sleep(ctx context.Context, duration time.Duration) error
}

// TimerSleeper waits on a timer and returns early when ctx is done.
type TimerSleeper struct{}

// NewTimerSleeper creates a new TimerSleeper.
func NewTimerSleeper() *TimerSleeper {
	return &TimerSleeper{}
}

// Sleep waits for duration or until ctx is done, whichever comes first.
func (it *TimerSleeper) Sleep(ctx context.Context, duration time.Duration) error {
	if duration <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
