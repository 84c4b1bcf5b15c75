// Package tui provides the interactive terminal front end for the flip
// animation core.
//
// The package implements a Bubble Tea application:
//
//   - [Model]: interactive card view with a live status panel
//   - [Canvas]: braille pixel canvas the card wireframe is drawn on
//   - Preset cycling backed by the config package
//
// # Key Bindings
//
//	Space/F - Flip the card
//	A       - Toggle the flip axis
//	B       - Toggle the backface mode
//	P/Tab   - Cycle presets
//	R       - Reset to the start side
//	?       - Show help overlay
//
// The model advances the animation itself on a fixed tick, so hosts
// only hand it a config and run the program.
package tui
