package flip

import (
	"context"
	"time"
)

// DefaultTick is the runner's frame interval when none is given.
const DefaultTick = time.Second / 60

// Runner owns a Controller on a single goroutine and drives it from a
// wall-clock ticker, so hosts on other goroutines can request flips and read
// state without racing the tick stream.
type Runner struct {
	ctrl   *Controller
	tick   time.Duration
	reqs   chan func(*Controller)
	frames <-chan Frame
	done   chan struct{}
}

// NewRunner wraps ctrl, ticking every tick (DefaultTick when non-positive).
// Requests block until [Runner.Run] is started.
func NewRunner(ctrl *Controller, tick time.Duration) *Runner {
	if tick <= 0 {
		tick = DefaultTick
	}
	return &Runner{
		ctrl: ctrl,
		tick: tick,
		// Unbuffered: a request is accepted only by rendezvous with the
		// loop (or its shutdown drain), so acceptance implies execution.
		reqs:   make(chan func(*Controller)),
		frames: ctrl.Subscribe(),
		done:   make(chan struct{}),
	}
}

// Frames is the published frame stream: latest-wins, primed with the
// current pose.
func (r *Runner) Frames() <-chan Frame { return r.frames }

// Run ticks the controller until ctx is canceled, serving requests between
// ticks. It owns the controller for its whole lifetime and may be called
// once.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			// Stop accepting, then flush requests that won the race,
			// so no caller is left waiting on a reply.
			close(r.done)
			for {
				select {
				case fn := <-r.reqs:
					fn(r.ctrl)
				default:
					return ctx.Err()
				}
			}
		case fn := <-r.reqs:
			fn(r.ctrl)
		case now := <-ticker.C:
			r.ctrl.Advance(now.Sub(last))
			last = now
		}
	}
}

// Do hands fn to the loop goroutine and reports whether it was accepted.
// It reports false once Run has returned; an accepted fn always executes.
func (r *Runner) Do(fn func(*Controller)) bool {
	select {
	case r.reqs <- fn:
		return true
	case <-r.done:
		return false
	}
}

// Flip requests a transition and returns its completion channel. Concurrent
// callers during a single animation all receive that animation's channel.
// Once the runner has stopped the returned channel is already closed.
func (r *Runner) Flip() <-chan struct{} {
	reply := make(chan (<-chan struct{}), 1)
	if !r.Do(func(c *Controller) { reply <- c.Flip() }) {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return <-reply
}

// Snapshot reads the current frame and stats off the loop goroutine. Once
// the runner has stopped it reads the controller directly; the loop
// goroutine is gone, so that is race free.
func (r *Runner) Snapshot() (Frame, Stats) {
	type snap struct {
		f  Frame
		st Stats
	}
	reply := make(chan snap, 1)
	if !r.Do(func(c *Controller) { reply <- snap{c.Frame(), c.Stats()} }) {
		return r.ctrl.Frame(), r.ctrl.Stats()
	}
	s := <-reply
	return s.f, s.st
}
