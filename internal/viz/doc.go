// Package viz provides the terminal live viewer for a running world.
//
// The viewer is a Bubble Tea model over a [timeline.Multiverse]: it advances
// the world on a timer and lets the user scrub through stored ticks.
//
//   - [Model]: the viewer (slice map, population map, stats, biomass chart)
//   - [Canvas]: Braille-based pixel canvas for the population map
//   - Theme selection with 4 built-in colour schemes
//
// # Key Bindings
//
//	Space - Pause/Resume
//	N     - Single step (re-plays stored ticks before creating new ones)
//	[ ]   - Rewind / forward one stored tick
//	+ -   - Move the slice level up / down
//	T     - Cycle colour themes
//	?     - Show help overlay
//	Q     - Quit
package viz
