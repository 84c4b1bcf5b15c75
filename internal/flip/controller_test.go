package flip

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero duration", func(c *Config) { c.Duration = 0 }, ErrInvalidDuration},
		{"negative duration", func(c *Config) { c.Duration = -time.Second }, ErrInvalidDuration},
		{"snap time at zero", func(c *Config) { c.SnapTime = 0 }, ErrInvalidSnapTime},
		{"snap time at one", func(c *Config) { c.SnapTime = 1 }, ErrInvalidSnapTime},
		{"snap travel at zero", func(c *Config) { c.SnapTravel = 0 }, ErrInvalidSnapTravel},
		{"snap travel above one", func(c *Config) { c.SnapTravel = 1.2 }, ErrInvalidSnapTravel},
		{"negative perspective", func(c *Config) { c.Perspective = -0.1 }, ErrInvalidPerspective},
		{"bogus axis", func(c *Config) { c.Axis = Axis(9) }, ErrUnknownAxis},
		{"bogus backface", func(c *Config) { c.Backface = BackfaceMode(9) }, ErrUnknownBackface},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if _, err := New(cfg); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestInitialFrame(t *testing.T) {
	c, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	fr := c.Frame()
	if fr.Face != Front {
		t.Errorf("expected front visible at rest, got %v", fr.Face)
	}
	if fr.Angle != 0 || fr.Progress != 0 {
		t.Errorf("expected zero angle and progress, got %v / %v", fr.Angle, fr.Progress)
	}
	if c.Animating() {
		t.Error("new controller should be idle")
	}
}

func TestInitialFrameBackStart(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Orientation = Back
	c, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	fr := c.Frame()
	if fr.Face != Back {
		t.Errorf("expected back visible at rest, got %v", fr.Face)
	}
	if math.Abs(fr.Angle-math.Pi) > 1e-12 {
		t.Errorf("expected rest angle pi, got %v", fr.Angle)
	}
	if fr.Progress != 1 {
		t.Errorf("expected resting progress 1, got %v", fr.Progress)
	}
	if c.Orientation() != Back {
		t.Errorf("expected orientation back, got %v", c.Orientation())
	}
}

func TestFlipTenthIn(t *testing.T) {
	c, _ := New(DefaultConfig()) // 500ms, knee at (0.2, 0.75), vertical
	c.Flip()
	c.Advance(50 * time.Millisecond)

	fr := c.Frame()
	if math.Abs(fr.Progress-0.1) > 1e-12 {
		t.Fatalf("expected progress 0.1, got %v", fr.Progress)
	}
	want := -0.375 * math.Pi
	if math.Abs(fr.Angle-want) > 1e-9 {
		t.Errorf("expected angle %v, got %v", want, fr.Angle)
	}
	if fr.Face != Front {
		t.Error("front should still be visible a tenth of the way in")
	}
}

func TestFlipCompletion(t *testing.T) {
	cfg := DefaultConfig()
	c, _ := New(cfg)
	done := c.Flip()

	for i := 0; i < 50; i++ {
		c.Advance(cfg.Duration / 25)
	}

	select {
	case <-done:
	default:
		t.Fatal("completion channel should be closed")
	}
	if c.Animating() {
		t.Error("controller should be idle after completion")
	}
	if c.Orientation() != Back {
		t.Errorf("expected orientation back, got %v", c.Orientation())
	}
	fr := c.Frame()
	if fr.Face != Back {
		t.Errorf("expected back visible, got %v", fr.Face)
	}
	if math.Abs(math.Abs(fr.Angle)-math.Pi) > 1e-9 {
		t.Errorf("expected a half-turn pose, got angle %v", fr.Angle)
	}
}

func TestFlipWhileAnimatingIsDropped(t *testing.T) {
	c, _ := New(DefaultConfig())
	first := c.Flip()
	c.SetProgress(0.4)
	second := c.Flip()

	if first != second {
		t.Error("re-entrant flip should hand back the in-flight channel")
	}
	if c.Stats().Dropped != 1 {
		t.Errorf("expected 1 dropped request, got %d", c.Stats().Dropped)
	}

	c.SetProgress(1)
	select {
	case <-first:
	default:
		t.Fatal("completion channel should be closed")
	}
	if c.Orientation() != Back {
		t.Error("a dropped request must not queue a second transition")
	}
	if c.Stats().Flips != 1 {
		t.Errorf("expected exactly one completed flip, got %d", c.Stats().Flips)
	}
}

func TestTwoFlipsReturnHome(t *testing.T) {
	c, _ := New(DefaultConfig())

	c.Flip()
	c.SetProgress(1)
	if c.Orientation() != Back {
		t.Fatalf("expected back after one flip, got %v", c.Orientation())
	}

	c.Flip()
	c.SetProgress(0.1)
	fr := c.Frame()
	want := math.Pi + 0.375*math.Pi
	if math.Abs(fr.Angle-want) > 1e-9 {
		t.Errorf("second flip should wind onward: expected %v, got %v", want, fr.Angle)
	}
	if fr.Face != Back {
		t.Error("back should still be visible early in the return flip")
	}

	c.SetProgress(0.5)
	if c.Frame().Face != Front {
		t.Error("front should show once the wind passes three quarters of a turn")
	}

	c.SetProgress(1)
	if c.Orientation() != Front {
		t.Errorf("expected front after two flips, got %v", c.Orientation())
	}
	fr = c.Frame()
	if math.Abs(fr.Angle-2*math.Pi) > 1e-9 {
		t.Errorf("expected a full wind, got %v", fr.Angle)
	}
	if fr.Face != Front {
		t.Error("full wind should show the front")
	}
}

func TestChangeDetection(t *testing.T) {
	c, _ := New(DefaultConfig())
	c.Flip()
	c.SetProgress(0.3)
	pubs := c.Stats().Published

	c.SetProgress(0.3)
	st := c.Stats()
	if st.Published != pubs {
		t.Errorf("identical pose should not publish: %d -> %d", pubs, st.Published)
	}
	if st.Skipped == 0 {
		t.Error("identical pose should count as skipped")
	}
}

func TestSubscribeLatestWins(t *testing.T) {
	c, _ := New(DefaultConfig())
	ch := c.Subscribe()

	select {
	case fr := <-ch:
		if fr.Angle != 0 {
			t.Errorf("primed frame should be the rest pose, got angle %v", fr.Angle)
		}
	default:
		t.Fatal("subscription should be primed with the current frame")
	}

	c.Flip()
	c.SetProgress(0.2)
	c.SetProgress(0.4)
	c.SetProgress(0.6)

	select {
	case fr := <-ch:
		if math.Abs(fr.Progress-0.6) > 1e-12 {
			t.Errorf("expected only the freshest frame, got progress %v", fr.Progress)
		}
	default:
		t.Fatal("expected a pending frame")
	}

	select {
	case fr := <-ch:
		t.Errorf("expected an empty buffer, got progress %v", fr.Progress)
	default:
	}
}

func TestIdleTicksDoNothing(t *testing.T) {
	c, _ := New(DefaultConfig())
	before := c.Frame()

	c.Advance(time.Second)
	c.SetProgress(0.5)

	if c.Frame() != before {
		t.Error("ticks outside an animation must not move the pose")
	}
	if c.Stats().Ticks != 0 {
		t.Errorf("idle ticks should not be counted, got %d", c.Stats().Ticks)
	}
}

func TestPinnedBackfaceHoldsStill(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backface = BackfacePinned
	c, _ := New(cfg)

	c.Flip()
	c.SetProgress(0.2)
	first := c.Frame().Opposite
	c.SetProgress(0.7)
	if c.Frame().Opposite != first {
		t.Error("pinned backface should not move during the flip")
	}
}

func TestNegativeAdvanceIgnored(t *testing.T) {
	c, _ := New(DefaultConfig())
	c.Flip()
	c.Advance(100 * time.Millisecond)
	fr := c.Frame()

	c.Advance(-50 * time.Millisecond)
	if c.Frame() != fr {
		t.Error("negative elapsed time should not rewind the animation")
	}
}

func TestFlipAfterCompletionStartsFresh(t *testing.T) {
	c, _ := New(DefaultConfig())
	first := c.Flip()
	c.SetProgress(1)

	second := c.Flip()
	if first == second {
		t.Error("a finished flip must hand out a new completion channel")
	}
	select {
	case <-second:
		t.Error("the new completion channel should still be open")
	default:
	}
}
