// Package biolexica assembles biomedical lexica from heterogeneous term
// sources and serves them through a grounding interface.
package biolexica

var (
	// Version of biolexica.
	Version = "v0.1.0"

	// Build timestamp, set by linker flags.
	Build = "n/a"
)
