// Package viz plays the chart in the terminal.
//
// The package implements a TUI using the Bubble Tea framework:
//
//   - [Model]: playback view stepping a scheduler and animating its scene
//   - [Canvas]: Braille-based pixel canvas with per-cell color
//   - [Picker]: preset selection menu shown before playback
//
// # Key Bindings
//
//	T - Cycle color themes
//	? - Show help overlay
//	Q - Quit
//
// Playback cannot be paused or scrubbed; it loops until quit.
package viz
