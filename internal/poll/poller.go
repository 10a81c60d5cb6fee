// README: Poll drives the fixed-interval refresh loop that keeps role views
// current. Clients and the admin cache re-fetch on a timer rather than being
// pushed to; staleness is bounded by the interval.
package poll

import (
	"context"
	"log/slog"
	"time"

	"swiftdrop/internal/observability"
)

const DefaultInterval = 5 * time.Second

// Poller runs fn every interval for as long as its context lives. Each poll
// runs on its own goroutine with a single-flight guard: if a poll is still in
// flight when the next trigger fires, the trigger is dropped rather than
// queued, so a slow backend never builds a backlog.
type Poller struct {
	interval time.Duration
	fn       func(context.Context) error
	log      *slog.Logger
	kick     chan struct{}
	busy     chan struct{}
}

func New(interval time.Duration, fn func(context.Context) error, log *slog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = slog.Default()
	}
	return &Poller{
		interval: interval,
		fn:       fn,
		log:      log,
		kick:     make(chan struct{}, 1),
		busy:     make(chan struct{}, 1),
	}
}

// Run polls immediately, then on every tick, until ctx is cancelled. It
// blocks; callers start it on its own goroutine.
func (p *Poller) Run(ctx context.Context) {
	go p.poll(ctx)
	t := time.NewTicker(p.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			go p.poll(ctx)
		case <-p.kick:
			go p.poll(ctx)
		}
	}
}

// Refresh requests an out-of-band poll, for callers that just performed a
// mutation and want the next view sooner than the tick. Non-blocking.
func (p *Poller) Refresh() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

func (p *Poller) poll(ctx context.Context) {
	select {
	case p.busy <- struct{}{}:
	default:
		observability.PollsCollapsed.Inc()
		return
	}
	defer func() { <-p.busy }()

	observability.PollCycles.Inc()
	if err := p.fn(ctx); err != nil && ctx.Err() == nil {
		p.log.Warn("poll cycle failed", "error", err)
	}
}
