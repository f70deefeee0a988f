// Package profiler provides scoped operation timing.
package profiler

import "time"

// Span is one measured operation in flight.
type Span struct {
	// Name of the operation being timed.
	Name string

	start time.Time
}

// Start begins timing an operation. The span is a plain value scoped to
// the call site; there is no process-wide timing state.
//
// Example:
//
//	span := profiler.Start("filter")
//	// ... work ...
//	took := span.Stop()
func Start(name string) *Span {
	return &Span{Name: name, start: time.Now()}
}

// Stop ends the span and returns its duration.
func (s *Span) Stop() time.Duration {
	return time.Since(s.start)
}

// Seconds is a convenience for reporting: the elapsed time so far as
// fractional seconds.
func (s *Span) Seconds() float64 {
	return time.Since(s.start).Seconds()
}
