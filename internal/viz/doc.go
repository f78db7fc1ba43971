// Package viz renders material point trajectories in the terminal.
//
//   - [Model]: Bubble Tea program that steps a point live
//   - [Canvas]: Braille-based pixel canvas
//   - [PlotComponents], [PlotEnergy]: asciigraph line plots of a finished run
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to initial state
//	Tab   - Select next force parameter
//	↑/↓   - Scale the selected parameter by ±5%
//	V     - Cycle projection plane (xz, xy, yz)
//	Q     - Quit
package viz
