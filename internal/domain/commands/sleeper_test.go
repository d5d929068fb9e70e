//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/modsweep/internal/domain/commands"
)

func TestTimerSleeperSleep(t *testing.T) {
	t.Parallel()

	t.Run("should return immediately for a zero cooldown", func(t *testing.T) {
		t.Parallel()

		// given
		sleeper := commands.NewTimerSleeper()

		// when
		err := sleeper.Sleep(context.Background(), 0)

		// then
		assert.NoError(t, err)
	})

	t.Run("should wait for the timer", func(t *testing.T) {
		t.Parallel()

		// given
		sleeper := commands.NewTimerSleeper()
		start := time.Now()

		// when
		err := sleeper.Sleep(context.Background(), 5*time.Millisecond)

		// then
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
	})

	t.Run("should stop early when the context is cancelled", func(t *testing.T) {
		t.Parallel()

		// given
		sleeper := commands.NewTimerSleeper()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// when
		err := sleeper.Sleep(ctx, time.Hour)

		// then
		assert.ErrorIs(t, err, context.Canceled)
	})
}
