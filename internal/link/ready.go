package link

import (
	"context"
	"time"

	"penumbra-agent/internal/clock"
)

// WaitReady calls ready every poll period until it reports true or timeout has
// elapsed on clk. It returns whether the link became ready; callers proceed
// either way.
func WaitReady(ctx context.Context, clk clock.Clock, timeout, poll time.Duration, ready func() bool) bool {
	start := clk.Millis()
	limit := uint32(timeout.Milliseconds())

	for {
		if ready() {
			return true
		}
		if clock.Since(clk, start) >= limit {
			return false
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(poll):
		}
	}
}
