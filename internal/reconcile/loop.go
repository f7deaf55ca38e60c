// Package reconcile decides when the session must be refreshed. It merges
// two triggers: debounced watcher signals and, when the watcher is absent
// or gone, a fixed polling interval.
package reconcile

import (
	"time"

	"github.com/Akashdeep-Patra/bgs/internal/log"
)

// Defaults for Options.
const (
	DefaultDebounce     = 150 * time.Millisecond
	DefaultPollInterval = 2 * time.Second
	DefaultBusyTimeout  = 10 * time.Millisecond
	DefaultIdleTimeout  = 100 * time.Millisecond
)

// Options configures a Loop. Zero durations select the defaults.
type Options struct {
	Debounce     time.Duration
	PollInterval time.Duration
	BusyTimeout  time.Duration
	IdleTimeout  time.Duration
	// ForcePolling ignores the watcher and polls from the start.
	ForcePolling bool
}

// Loop is the refresh scheduler. It is driven from a single goroutine.
type Loop struct {
	events <-chan struct{}
	opts   Options

	polling       bool
	pendingSince  time.Time // Zero when no debounce is running.
	lastRefreshed time.Time
}

// New returns a Loop fed by events. A nil channel means no watcher could
// be started, so the loop polls.
func New(events <-chan struct{}, opts Options) *Loop {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.BusyTimeout <= 0 {
		opts.BusyTimeout = DefaultBusyTimeout
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = DefaultIdleTimeout
	}
	return &Loop{
		events:  events,
		opts:    opts,
		polling: events == nil || opts.ForcePolling,
	}
}

// Polling reports whether the loop is in polling fallback mode.
func (l *Loop) Polling() bool { return l.polling }

// Pending reports whether a debounced refresh is waiting.
func (l *Loop) Pending() bool { return !l.pendingSince.IsZero() }

// Timeout is how long to wait for input before the next Tick.
func (l *Loop) Timeout() time.Duration {
	if l.Pending() {
		return l.opts.BusyTimeout
	}
	return l.opts.IdleTimeout
}

// MarkRefreshed records that a refresh ran at now.
func (l *Loop) MarkRefreshed(now time.Time) {
	l.lastRefreshed = now
}

// Tick drains every queued watcher signal without blocking and reports
// whether a refresh is due at now.
func (l *Loop) Tick(now time.Time) bool {
	l.drain(now)

	if l.Pending() && now.Sub(l.pendingSince) >= l.opts.Debounce {
		l.pendingSince = time.Time{}
		return true
	}
	if l.polling && now.Sub(l.lastRefreshed) >= l.opts.PollInterval {
		return true
	}
	return false
}

func (l *Loop) drain(now time.Time) {
	if l.polling || l.events == nil {
		return
	}
	for {
		select {
		case _, ok := <-l.events:
			if !ok {
				log.Warn("file watcher disconnected, falling back to polling",
					"interval", l.opts.PollInterval)
				l.polling = true
				l.events = nil
				return
			}
			l.pendingSince = now
		default:
			return
		}
	}
}
