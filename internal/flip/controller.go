package flip

import (
	"math"
	"time"
)

// Stats counts controller activity for host status panes.
type Stats struct {
	Ticks     int // progress updates processed while animating
	Published int // frames that changed and went out to subscribers
	Skipped   int // ticks whose derived pose was unchanged
	Flips     int // completed transitions
	Dropped   int // flip requests ignored because one was in flight
}

// Controller is the state machine for one two-faced panel. It is either
// idle, resting on one face, or animating a single half-turn to the other;
// the host owns real time and feeds it in through [Controller.Advance] or
// [Controller.SetProgress].
type Controller struct {
	cfg Config

	animating bool
	progress  float64
	direction float64 // -1 winds the front over, +1 winds the back over
	restBase  float64 // rest angle when the in-flight flip started
	turns     int     // completed flips since construction
	backStart bool

	done  chan struct{}
	frame Frame
	subs  []chan Frame
	stats Stats
}

// New validates cfg and builds a controller resting on cfg.Orientation, with
// its first frame already computed so hosts can draw before any flip.
func New(cfg Config) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{cfg: cfg, backStart: cfg.Orientation == Back}
	if c.backStart {
		c.progress = 1
	}
	c.frame = c.compute(c.restAngle())
	return c, nil
}

// Config returns the animation shape the controller was built with.
func (c *Controller) Config() Config { return c.cfg }

// Frame returns the most recently derived frame.
func (c *Controller) Frame() Frame { return c.frame }

// Animating reports whether a flip is in flight.
func (c *Controller) Animating() bool { return c.animating }

// Stats returns the activity counters.
func (c *Controller) Stats() Stats { return c.stats }

// Orientation returns the resting face: the one shown before the first flip,
// toggled once per completed flip. While a flip is in flight this is still
// the face the panel left from.
func (c *Controller) Orientation() Orientation {
	if c.parity() == 1 {
		return Back
	}
	return Front
}

// Flip starts a transition to the other face and returns the channel that
// closes when it completes. A call while a flip is already in flight changes
// nothing and returns the in-flight channel, so every waiter sees exactly
// one completion per transition.
func (c *Controller) Flip() <-chan struct{} {
	if c.animating {
		c.stats.Dropped++
		return c.done
	}
	c.animating = true
	c.progress = 0
	c.restBase = c.restAngle()
	if c.Orientation() == Front {
		c.direction = -1
	} else {
		c.direction = 1
	}
	c.done = make(chan struct{})
	return c.done
}

// Advance moves the in-flight animation forward by the host's elapsed wall
// time. Outside an animation, or for non-positive dt, it does nothing.
func (c *Controller) Advance(dt time.Duration) {
	if !c.animating || dt <= 0 {
		return
	}
	c.tick(c.progress + float64(dt)/float64(c.cfg.Duration))
}

// SetProgress pins the in-flight animation at progress p directly, for hosts
// whose tick source reports absolute positions. p clamps to [0, 1]; outside
// an animation the call does nothing.
func (c *Controller) SetProgress(p float64) {
	if !c.animating {
		return
	}
	c.tick(p)
}

// Subscribe returns a channel carrying each published frame, primed with the
// current one. The buffer holds the latest frame only: a consumer that lags
// sees the freshest pose, never a backlog. Subscriptions live as long as the
// controller.
func (c *Controller) Subscribe() <-chan Frame {
	ch := make(chan Frame, 1)
	ch <- c.frame
	c.subs = append(c.subs, ch)
	return ch
}

func (c *Controller) tick(p float64) {
	c.stats.Ticks++
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	c.progress = p
	c.refresh()
	if c.progress >= 1 {
		c.finish()
	}
}

func (c *Controller) finish() {
	c.animating = false
	c.turns++
	c.stats.Flips++
	close(c.done)
}

func (c *Controller) parity() int {
	p := c.turns
	if c.backStart {
		p++
	}
	return p % 2
}

func (c *Controller) restAngle() float64 {
	if c.parity() == 1 {
		return math.Pi
	}
	return 0
}

// angle derives the signed rotation for the current state. Flips leaving the
// front wind through [0, -π]; flips leaving the back wind onward through
// [π, 2π], so consecutive transitions stay continuous modulo a full turn
// instead of snapping back through zero.
func (c *Controller) angle() float64 {
	if !c.animating {
		return c.restAngle()
	}
	turn := c.direction * math.Pi * Ease(c.progress, c.cfg.SnapTime, c.cfg.SnapTravel)
	// a degenerate easing value cannot push the pose past half a turn
	if turn > math.Pi {
		turn = math.Pi
	}
	if turn < -math.Pi {
		turn = -math.Pi
	}
	return c.restBase + turn
}

func (c *Controller) compute(angle float64) Frame {
	cur, opp := Transforms(angle, c.cfg.Axis, c.cfg.Backface, c.cfg.Perspective)
	face := Back
	if FrontVisible(angle) {
		face = Front
	}
	return Frame{Current: cur, Opposite: opp, Face: face, Progress: c.progress, Angle: angle}
}

// refresh rederives the frame and publishes it when the pose actually
// changed. Comparison covers the transforms and the visible face; progress
// and angle ride along as informational fields.
func (c *Controller) refresh() {
	next := c.compute(c.angle())
	changed := next.Current != c.frame.Current ||
		next.Opposite != c.frame.Opposite ||
		next.Face != c.frame.Face
	c.frame = next
	if !changed {
		c.stats.Skipped++
		return
	}
	c.stats.Published++
	for _, ch := range c.subs {
		select {
		case ch <- next:
		default:
			// full: drop the stale frame, keep the fresh one
			select {
			case <-ch:
			default:
			}
			ch <- next
		}
	}
}
