// Package flip implements the timing, rotation and visibility core for a
// two-faced panel that turns over in 3D.
//
// The package derives everything from a handful of values:
//
//   - [Config]: the immutable animation shape (duration, easing knee, axis)
//   - [Ease]: the two-segment snap-then-settle easing curve
//   - [Transforms]: the posed 4×4 matrices for both faces at an angle
//   - [FrontVisible]: which face the viewer sees at an angle
//   - [Controller]: the idle/animating state machine driven by host ticks
//   - [Frame]: one published snapshot (transform pair, visible face)
//
// # Example
//
//	ctrl, _ := flip.New(flip.DefaultConfig())
//	done := ctrl.Flip()
//	for ctrl.Animating() {
//		ctrl.Advance(16 * time.Millisecond)
//	}
//	<-done
//
// # Thread Safety
//
// Controller instances are NOT thread-safe: a single goroutine owns the tick
// stream and all calls. Hosts that live on several goroutines drive a
// [Runner], which serializes requests onto its loop.
package flip
