package utils

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Lerp returns a value that has been linearly interpolated between p0 and p1. A t of 0.0 returns p0 and a t of 1.0
// returns p1.
func Lerp[T constraints.Float](p0, p1, t T) T {
	return p0 + t*(p1-p0)
}

// Mid returns the middle value of p0 and p1.
func Mid[T constraints.Float](p0, p1 T) T {
	return (p0 + p1) / 2
}

// Norm normalizes v between minVal and maxVal.
func Norm[T constraints.Float](v, minVal, maxVal T) T {
	return (v - minVal) / (maxVal - minVal)
}

// Clamp bounds t to the range described by minVal and maxVal, in either order.
func Clamp[T constraints.Float](t, minVal, maxVal T) T {
	lo, hi := T(math.Min(float64(minVal), float64(maxVal))), T(math.Max(float64(minVal), float64(maxVal)))
	return T(math.Max(math.Min(float64(t), float64(hi)), float64(lo)))
}
