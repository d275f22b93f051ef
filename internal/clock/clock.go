// Package clock abstracts the time source so pricing computations can
// be replayed at a fixed instant.
package clock

import "time"

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// Real reads the wall clock in UTC
type Real struct{}

// Now returns the current UTC time
func (Real) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always returns the same instant
type Fixed struct {
	T time.Time
}

// NewFixed creates a clock frozen at t
func NewFixed(t time.Time) Fixed {
	return Fixed{T: t}
}

// Now returns the frozen instant
func (f Fixed) Now() time.Time {
	return f.T
}
