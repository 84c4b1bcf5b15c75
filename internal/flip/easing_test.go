package flip

import (
	"math"
	"testing"
)

func TestEaseEndpoints(t *testing.T) {
	knees := []struct{ snapTime, snapTravel float64 }{
		{0.2, 0.75},
		{0.5, 0.5},
		{0.15, 0.85},
		{0.35, 0.55},
	}

	for _, k := range knees {
		if got := Ease(0, k.snapTime, k.snapTravel); got != 0 {
			t.Errorf("Ease(0, %v, %v) = %v, expected 0", k.snapTime, k.snapTravel, got)
		}
		if got := Ease(1, k.snapTime, k.snapTravel); got != 1 {
			t.Errorf("Ease(1, %v, %v) = %v, expected 1", k.snapTime, k.snapTravel, got)
		}
	}
}

func TestEaseSegmentValues(t *testing.T) {
	tests := []struct {
		progress float64
		expected float64
	}{
		{0.05, 0.1875}, // quarter of the snap phase
		{0.1, 0.375},   // halfway through the snap phase
		{0.2, 0.75},    // the knee itself
		{0.6, 0.875},   // halfway through the settle phase
		{0.9, 0.96875}, // deep into the settle phase
	}

	for _, tt := range tests {
		got := Ease(tt.progress, 0.2, 0.75)
		if math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Ease(%v, 0.2, 0.75) = %v, expected %v", tt.progress, got, tt.expected)
		}
	}
}

func TestEaseContinuousAtKnee(t *testing.T) {
	below := Ease(0.2-1e-9, 0.2, 0.75)
	at := Ease(0.2, 0.2, 0.75)
	if math.Abs(at-0.75) > 1e-12 {
		t.Errorf("knee value = %v, expected 0.75", at)
	}
	if math.Abs(below-at) > 1e-6 {
		t.Errorf("discontinuity at knee: %v below vs %v at", below, at)
	}
}

func TestEaseStrictlyIncreasing(t *testing.T) {
	prev := -1.0
	for i := 0; i <= 200; i++ {
		p := float64(i) / 200
		f := Ease(p, 0.2, 0.75)
		if f <= prev {
			t.Fatalf("easing not strictly increasing at p=%v: %v after %v", p, f, prev)
		}
		prev = f
	}
}

func TestEaseClampsOutOfRange(t *testing.T) {
	if got := Ease(-0.5, 0.2, 0.75); got != 0 {
		t.Errorf("expected clamp to 0, got %v", got)
	}
	if got := Ease(1.5, 0.2, 0.75); got != 1 {
		t.Errorf("expected clamp to 1, got %v", got)
	}
}

func TestCurve(t *testing.T) {
	pts := Curve(0.2, 0.75, 50)
	if len(pts) != 51 {
		t.Fatalf("expected 51 samples, got %d", len(pts))
	}
	if pts[0] != 0 || pts[50] != 1 {
		t.Errorf("curve should span 0..1, got %v..%v", pts[0], pts[50])
	}
}
