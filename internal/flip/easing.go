package flip

// Ease maps linear progress through a flip to the fraction of the half-turn
// covered, using two linear segments that meet at (snapTime, snapTravel):
// the panel snaps through most of its travel early, then settles through the
// remainder. Ease(0) = 0 and Ease(1) = 1, the curve is continuous at the
// knee, and it is strictly increasing whenever both knee coordinates lie
// strictly inside (0, 1), which [Config.Validate] guarantees before a
// controller ever calls it. Progress outside [0, 1] clamps to the endpoints.
func Ease(progress, snapTime, snapTravel float64) float64 {
	if progress <= 0 {
		return 0
	}
	if progress >= 1 {
		return 1
	}
	if progress < snapTime {
		return progress / snapTime * snapTravel
	}
	return snapTravel + (progress-snapTime)/(1-snapTime)*(1-snapTravel)
}

// Curve samples the easing at n+1 evenly spaced progress values, ready for
// plotting. n must be at least 1.
func Curve(snapTime, snapTravel float64, n int) []float64 {
	out := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		out[i] = Ease(float64(i)/float64(n), snapTime, snapTravel)
	}
	return out
}
