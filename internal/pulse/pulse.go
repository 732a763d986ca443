// Package pulse replays query highlighting after a short pause so a viewer
// notices it even when the same query is repeated. It only touches what is
// rendered; engine state and query outcomes are never delayed.
package pulse

import (
	"context"
	"sync"
	"time"

	"bloomsim/internal/simulator"
)

// RenderFunc draws one snapshot. It is called from the caller's goroutine for
// the immediate frame and from a timer goroutine for the delayed one.
type RenderFunc func(simulator.Snapshot)

// Pulse schedules at most one delayed frame at a time.
type Pulse struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
	// unwatch detaches the context watcher of the pending frame.
	unwatch func() bool
	gen     uint64
}

func New(delay time.Duration) *Pulse {
	return &Pulse{delay: delay}
}

func (p *Pulse) Delay() time.Duration { return p.delay }

// Trigger renders snap with its highlights stripped, then snap itself once the
// delay has passed. A pending frame from an earlier Trigger is dropped. With a
// non-positive delay snap is rendered once, immediately.
func (p *Pulse) Trigger(ctx context.Context, snap simulator.Snapshot, render RenderFunc) {
	p.mu.Lock()
	p.cancelLocked()
	gen := p.gen
	p.mu.Unlock()

	if p.delay <= 0 {
		render(snap)
		return
	}
	render(snap.Unmarked())

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		// stopped while the first frame was drawn
		return
	}
	p.timer = time.AfterFunc(p.delay, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if gen != p.gen || ctx.Err() != nil {
			return
		}
		p.timer = nil
		p.unwatch()
		p.unwatch = nil
		render(snap)
	})
	p.unwatch = context.AfterFunc(ctx, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if gen == p.gen {
			p.cancelLocked()
		}
	})
}

// pending reports whether a delayed frame is scheduled.
func (p *Pulse) pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.timer != nil
}

// Stop drops any pending frame. Once Stop returns no delayed frame is
// rendered.
func (p *Pulse) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancelLocked()
}

func (p *Pulse) cancelLocked() {
	p.gen++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	if p.unwatch != nil {
		p.unwatch()
		p.unwatch = nil
	}
}
