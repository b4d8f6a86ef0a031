// Package analysis provides views of a finished trajectory.
//
//   - [PhasePortrait]: one compartment plotted against another
//   - [PhasePortraitToASCII]: terminal rendering of a portrait
//
// The classic SIR view plots I against S: the trajectory starts near S=N,
// climbs while S > N/R0 and falls after, which makes the herd-immunity
// threshold visible without a time axis.
package analysis
