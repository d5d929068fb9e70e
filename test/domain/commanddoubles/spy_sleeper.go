//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"time"

	"github.com/rios0rios0/modsweep/internal/domain/commands"
)

// SpySleeper records cooldowns instead of waiting. When CancelAfter is set,
// the Cancel function is called once that many cooldowns were requested.
type SpySleeper struct {
	Durations   []time.Duration
	CancelAfter int
	Cancel      context.CancelFunc
}

var _ commands.Sleeper = (*SpySleeper)(nil)

func (s *SpySleeper) Sleep(ctx context.Context, duration time.Duration) error {
	s.Durations = append(s.Durations, duration)
	if s.CancelAfter > 0 && len(s.Durations) >= s.CancelAfter && s.Cancel != nil {
		s.Cancel()
	}
	return ctx.Err()
}
