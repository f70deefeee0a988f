// Package util - terminal geometry queries for pretty-printed output.
package util

// Sensible (?) defaults when no terminal is attached.
const (
	fallbackCols = 150
	fallbackRows = 40
)
