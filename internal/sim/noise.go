package sim

import "math/rand"

// NoNoise returns the default noise strategy: always zero.
func NoNoise() NoiseFunc {
	return func(int, map[string]float64, History, float64) float64 {
		return 0
	}
}

// Gaussian returns a seeded zero-mean gaussian noise strategy.
// Deterministic for a given seed and call sequence.
func Gaussian(stddev float64, seed int64) NoiseFunc {
	rng := rand.New(rand.NewSource(seed))
	return func(int, map[string]float64, History, float64) float64 {
		return rng.NormFloat64() * stddev
	}
}
