package utils

import (
	"math"
	"math/rand"

	"golang.org/x/exp/constraints"
)

// RandomFloatBetween returns a uniformly distributed float in [minVal, maxVal) drawn from the package-level source.
// Callers are expected to pass minVal <= maxVal.
func RandomFloatBetween[T constraints.Float](minVal, maxVal T) T {
	return RandomFloatBetweenWith(nil, minVal, maxVal)
}

// RandomFloatBetweenWith is RandomFloatBetween drawing from r. A nil r falls back to the package-level source.
func RandomFloatBetweenWith[T constraints.Float](r *rand.Rand, minVal, maxVal T) T {
	next := rand.Float64
	if r != nil {
		next = r.Float64
	}
	v := T(next()*(float64(maxVal)-float64(minVal)) + float64(minVal))
	if v >= maxVal && maxVal > minVal {
		// rounding into a narrower T can land on maxVal
		v = below(maxVal)
	}
	return v
}

// below returns the largest T smaller than x.
func below[T constraints.Float](x T) T {
	if v := T(math.Nextafter(float64(x), math.Inf(-1))); v < x {
		return v
	}
	return T(math.Nextafter32(float32(x), float32(math.Inf(-1))))
}

// RandomIntBetween floors a random float in [minVal, maxVal), so maxVal itself is never returned.
func RandomIntBetween[T constraints.Float](minVal, maxVal T) int {
	return RandomIntBetweenWith(nil, minVal, maxVal)
}

// RandomIntBetweenWith is RandomIntBetween drawing from r.
func RandomIntBetweenWith[T constraints.Float](r *rand.Rand, minVal, maxVal T) int {
	return int(math.Floor(float64(RandomFloatBetweenWith(r, minVal, maxVal))))
}
