// Package session drives a flip controller headlessly at a fixed step, for
// recordings and renders that must not depend on wall-clock jitter.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/flipdeck/flipdeck/internal/flip"
)

// Script is the schedule of a headless run: how many flips to perform, the
// fixed tick between frames, and how long to dwell at rest after each
// completed flip.
type Script struct {
	Flips int
	Tick  time.Duration
	Dwell time.Duration
}

// Point is one captured instant of a run.
type Point struct {
	Time  time.Duration
	Frame flip.Frame
}

// Session drives one controller through a script, handing every frame to a
// callback in tick order.
type Session struct {
	ctrl *flip.Controller
}

func New(ctrl *flip.Controller) *Session {
	return &Session{ctrl: ctrl}
}

// Controller returns the driven controller, for reading stats after a run.
func (s *Session) Controller() *flip.Controller { return s.ctrl }

// Run executes the script, calling fn for the initial rest frame and then
// once per tick. fn returning false stops the run early without error.
func (s *Session) Run(ctx context.Context, script Script, fn func(Point) bool) error {
	if script.Flips <= 0 {
		return fmt.Errorf("session: flips must be positive, got %d", script.Flips)
	}
	tick := script.Tick
	if tick <= 0 {
		tick = flip.DefaultTick
	}

	var t time.Duration
	emit := func() bool {
		return fn(Point{Time: t, Frame: s.ctrl.Frame()})
	}

	if !emit() {
		return nil
	}

	for i := 0; i < script.Flips; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.ctrl.Flip()
		for s.ctrl.Animating() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			s.ctrl.Advance(tick)
			t += tick
			if !emit() {
				return nil
			}
		}

		for d := time.Duration(0); d < script.Dwell; d += tick {
			t += tick
			if !emit() {
				return nil
			}
		}
	}
	return nil
}

// Collect runs the script and gathers every point.
func (s *Session) Collect(ctx context.Context, script Script) ([]Point, error) {
	pts := make([]Point, 0, script.Flips*16)
	err := s.Run(ctx, script, func(p Point) bool {
		pts = append(pts, p)
		return true
	})
	if err != nil {
		return nil, err
	}
	return pts, nil
}
