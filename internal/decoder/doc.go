// Package decoder owns the PRT-7 decode loop.
//
// Ownership boundary:
// - rotor and payload state for one run
// - line -> frame -> apply sequencing
// - status event emission
//
// Line sources and sinks are collaborators; see internal/source and
// internal/sink for the shipped implementations.
package decoder
