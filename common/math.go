package common

import "math/rand/v2"

const (
	BaseWidth  = 800
	BaseHeight = 600
	TPS        = 60
)

// Between returns a uniform integer in [lo, hi], both ends inclusive.
func Between(rng *rand.Rand, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + rng.IntN(hi-lo+1)
}

// BetweenExclusive returns a uniform integer in [lo, hi).
func BetweenExclusive(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo)
}

// FloatBetween returns a uniform float in [lo, hi).
func FloatBetween(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}
