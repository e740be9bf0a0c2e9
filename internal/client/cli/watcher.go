package cli

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	pingTimeout      = 3 * time.Second
	startupProbeTime = 10 * time.Second
)

// waitForService probes the health endpoint with exponential backoff for a
// short while at startup. The REPL starts either way; the probe only decides
// the initial mode.
func (a *App) waitForService(ctx context.Context) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 250 * time.Millisecond
	bo.MaxInterval = 2 * time.Second
	bo.MaxElapsedTime = startupProbeTime

	err := backoff.RetryNotify(
		func() error { return a.ping(ctx) },
		backoff.WithContext(bo, ctx),
		func(err error, next time.Duration) {
			a.log.Debug(ctx, "service not reachable yet", "error", err, "retry_in", next)
		},
	)
	if err != nil {
		a.log.Warn(ctx, "service unreachable at startup", "error", err)
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the service every interval and updates the
// mode shown in the prompt. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := a.ping(ctx); err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}

func (a *App) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return a.authService.Ping(ctx)
}
