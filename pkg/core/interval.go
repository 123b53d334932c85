package core

import "math"

// Interval is a range of ray parameters
type Interval struct {
	Min, Max float64
}

var (
	// Universe covers every ray parameter
	Universe = Interval{Min: math.Inf(-1), Max: math.Inf(1)}
	// Forward covers every parameter in front of the ray origin
	Forward = Interval{Min: 0, Max: math.Inf(1)}
)

// NewInterval creates an interval from min to max
func NewInterval(min, max float64) Interval {
	return Interval{Min: min, Max: max}
}

// Surrounds reports whether t lies strictly inside the interval.
// Intersection queries accept only surrounded parameters.
func (i Interval) Surrounds(t float64) bool {
	return i.Min < t && t < i.Max
}

// Contains reports whether t lies inside the interval, ends included
func (i Interval) Contains(t float64) bool {
	return i.Min <= t && t <= i.Max
}

// WithMax returns the interval with its upper end replaced
func (i Interval) WithMax(t float64) Interval {
	return Interval{Min: i.Min, Max: t}
}

// Size returns the length of the interval
func (i Interval) Size() float64 {
	return i.Max - i.Min
}
