package flip

import "math"

// FrontVisible reports which face the viewer sees at the given signed
// rotation angle: the front inside a quarter turn of flat (|a| ≤ π/2), or
// past three quarters of a wound full turn (|a| ≥ 3π/2). Both bounds are
// inclusive, so the exact edge-on poses still count as front.
func FrontVisible(angle float64) bool {
	a := math.Abs(angle)
	return a <= math.Pi/2 || a >= 3*math.Pi/2
}
