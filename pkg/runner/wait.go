package runner

import (
	"context"
	"time"
)

const defaultPollInterval = 100 * time.Millisecond

// Check is a single probe of a condition. observed describes what was seen and ends up
// in the error when the condition never holds.
type Check func() (ok bool, observed string, err error)

// Wait polls check every interval until it succeeds or timeout elapses. A probe error does not
// stop polling, the page may be between navigations; its text becomes the observed value.
// On timeout the last observation is returned with ErrTimeout, never before the deadline.
func Wait(ctx context.Context, timeout, interval time.Duration, check Check) (string, error) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	deadline := time.Now().Add(timeout)
	for {
		ok, observed, err := check()
		if err != nil {
			observed = err.Error()
		}
		if ok && err == nil {
			return observed, nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return observed, ErrTimeout
		}
		timer := time.NewTimer(min(interval, remaining))
		select {
		case <-ctx.Done():
			timer.Stop()
			return observed, ctx.Err()
		case <-timer.C:
		}
	}
}

// sleep pauses for d or until ctx is canceled.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
