package app

import (
	"context"
	"time"
)

const (
	defaultPollInterval = 5 * time.Minute

	// maxBackoff caps the delay between reloads while the API is failing.
	maxBackoff = 30 * time.Minute
)

// StartPoller reloads the panels in the background every interval. While the
// API reports offline the delay doubles up to maxBackoff. A zero interval
// disables polling; a negative one uses the default. It returns immediately.
func StartPoller(ctx context.Context, d *Dashboard, interval time.Duration) {
	if interval == 0 {
		return
	}
	if interval < 0 {
		interval = defaultPollInterval
	}
	go func() {
		failures := 0
		for {
			timer := time.NewTimer(calculateBackoff(failures, interval))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}

			d.LoadPanels(ctx)
			if d.Health().IsOffline() {
				failures++
				d.Logger.Warn("panel reload failed", "consecutive_failures", failures)
			} else {
				failures = 0
				d.Logger.Debug("panels reloaded")
			}
		}
	}()
}

// calculateBackoff returns the delay before the next reload after failures
// consecutive failed reloads.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for range failures {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
