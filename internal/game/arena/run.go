package arena

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Run steps the arena every tick with a fixed dt of tick (blocks until the
// context is canceled or Stop is called).
func (a *Arena) Run(ctx context.Context, tick time.Duration) error {
	if tick <= 0 {
		return fmt.Errorf("arena tick %v: must be positive", tick)
	}

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	dt := tick.Seconds()
	slog.Info("arena loop started", "tick", tick)

	for {
		select {
		case <-ctx.Done():
			slog.Info("arena loop stopping", "frames", a.frame.Load())
			return ctx.Err()

		case <-a.stopCh:
			slog.Info("arena loop stopped", "frames", a.frame.Load())
			return nil

		case <-ticker.C:
			a.Step(dt)
		}
	}
}

// Stop ends Run. Safe to call more than once.
func (a *Arena) Stop() {
	a.stopOnce.Do(func() { close(a.stopCh) })
}
