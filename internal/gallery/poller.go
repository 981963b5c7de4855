package gallery

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

const DefaultInterval = 30 * time.Second

type Fetcher interface {
	Fetch(ctx context.Context) Snapshot
}

// Poller re-runs a Fetcher on a fixed interval and hands every snapshot to
// publish. At most one fetch runs at a time; a tick that finds one in
// flight is skipped. Nothing is published once Stop has been called.
// publish runs on a poller goroutine and must not call back into the Poller.
type Poller struct {
	fetcher  Fetcher
	interval time.Duration
	publish  func(Snapshot)
	log      *logrus.Logger

	inFlight atomic.Bool
	skipped  atomic.Int64

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped bool
	wg      sync.WaitGroup
}

func NewPoller(f Fetcher, interval time.Duration, publish func(Snapshot), log *logrus.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = logrus.New()
	}
	return &Poller{fetcher: f, interval: interval, publish: publish, log: log}
}

// Start fetches once right away and then on every tick until ctx is done or
// Stop is called. Calling Start twice is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil || p.stopped {
		return
	}
	ctx, p.cancel = context.WithCancel(ctx)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.loop(ctx)
	}()
}

func (p *Poller) loop(ctx context.Context) {
	t := time.NewTicker(p.interval)
	defer t.Stop()

	p.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			p.Tick(ctx)
		}
	}
}

// Tick starts one fetch in the background unless one is already running.
// It reports whether a fetch was started.
func (p *Poller) Tick(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return false
	}
	if !p.inFlight.CompareAndSwap(false, true) {
		p.skipped.Add(1)
		p.log.Debug("gallery poll skipped, previous fetch still running")
		return false
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.inFlight.Store(false)

		snap := p.fetcher.Fetch(ctx)
		if ctx.Err() != nil {
			return
		}

		p.mu.Lock()
		defer p.mu.Unlock()
		if p.stopped {
			return
		}
		p.publish(snap)
	}()
	return true
}

// Skipped counts ticks dropped by the overlap guard.
func (p *Poller) Skipped() int64 { return p.skipped.Load() }

// Stop cancels the timer and any fetch in flight and waits for every
// goroutine the poller started. It is safe to call more than once.
func (p *Poller) Stop() {
	p.mu.Lock()
	p.stopped = true
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Unlock()

	p.wg.Wait()
}
