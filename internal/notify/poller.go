package notify

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/spex2024/ug-dashboard/internal/obs"
	"github.com/spex2024/ug-dashboard/internal/roster"
)

// DefaultInterval matches the 30-second cadence the dashboard has always
// polled at.
const DefaultInterval = 30 * time.Second

// OfficerSource is the slice of the officer store the poller needs.
type OfficerSource interface {
	FetchAll(ctx context.Context) error
	Snapshot() []roster.Officer
}

// AdminSource is the slice of the admin store the poller needs.
type AdminSource interface {
	FetchAll(ctx context.Context) error
	Snapshot() []roster.Admin
}

// Archiver receives accepted notifications for durable storage.
type Archiver interface {
	Append(ctx context.Context, batch []Notification) error
}

// Poller re-fetches officers and admins on a fixed interval, diffs the
// snapshots, and routes accepted notifications to the feed, the
// subscriber stream, the optional archive, and the chime hook.
type Poller struct {
	officers OfficerSource
	admins   AdminSource
	feed     *Feed
	differ   *Differ

	stream   *Stream
	archive  Archiver
	chime    func()
	interval time.Duration

	inFlight atomic.Bool
	now      func() time.Time
}

// PollerOption configures Poller behavior.
type PollerOption func(*Poller)

// WithInterval overrides the poll cadence.
func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithStream routes accepted notifications to subscriber fan-out.
func WithStream(s *Stream) PollerOption {
	return func(p *Poller) { p.stream = s }
}

// WithArchive routes accepted notifications to durable storage.
func WithArchive(a Archiver) PollerOption {
	return func(p *Poller) { p.archive = a }
}

// WithChime installs the audible-cue hook invoked once per cycle that
// produced notifications. Failures (including panics) are swallowed.
func WithChime(fn func()) PollerOption {
	return func(p *Poller) { p.chime = fn }
}

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) PollerOption {
	return func(p *Poller) {
		if fn != nil {
			p.now = fn
		}
	}
}

// NewPoller constructs a poller over the two stores and the feed.
func NewPoller(officers OfficerSource, admins AdminSource, feed *Feed, opts ...PollerOption) *Poller {
	p := &Poller{
		officers: officers,
		admins:   admins,
		feed:     feed,
		differ:   NewDiffer(),
		interval: DefaultInterval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start polls once immediately, then on every tick until the returned
// stop function is called.
func (p *Poller) Start(ctx context.Context) func() {
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		p.Poll(ctx)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.Poll(ctx)
			}
		}
	}()
	return cancel
}

// Poll runs one fetch-and-diff cycle. A cycle still in flight when the
// next one is due makes the new cycle a no-op: overlapping diff passes
// would interleave snapshot replacement unpredictably.
func (p *Poller) Poll(ctx context.Context) {
	if !p.inFlight.CompareAndSwap(false, true) {
		obs.ObservePollSkipped()
		return
	}
	defer p.inFlight.Store(false)

	outcome := "ok"
	if err := p.officers.FetchAll(ctx); err != nil {
		outcome = "error"
	}
	if err := p.admins.FetchAll(ctx); err != nil {
		outcome = "error"
	}

	at := p.now().UTC()
	produced := p.differ.DiffOfficers(p.officers.Snapshot(), at)
	produced = append(produced, p.differ.DiffAdmins(p.admins.Snapshot(), at)...)

	accepted := p.feed.Add(produced)
	if len(accepted) > 0 {
		for _, n := range accepted {
			obs.ObserveNotification(string(n.Type))
			if p.stream != nil {
				p.stream.Publish(n)
			}
		}
		if p.archive != nil {
			_ = p.archive.Append(ctx, accepted)
		}
		p.playChime()
	}

	obs.ObservePollCycle(outcome)
}

func (p *Poller) playChime() {
	if p.chime == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	p.chime()
}
