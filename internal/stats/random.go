package stats

import (
	"math"
	"math/rand"
	"time"
)

// Sampler is the randomness source for all noise terms in the simulations.
// It is not safe for concurrent use; each worker owns its own Sampler.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a Sampler seeded from the wall clock. Projections are
// intentionally not reproducible across calls.
func NewSampler() *Sampler {
	return NewSamplerWithSeed(time.Now().UnixNano())
}

// NewSamplerWithSeed creates a Sampler with a fixed seed, for tests.
func NewSamplerWithSeed(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// Gaussian draws one sample from N(mean, std) using the Box-Muller transform.
// Both uniforms are re-drawn while exactly zero to avoid log(0).
func (s *Sampler) Gaussian(mean, std float64) float64 {
	var u, v float64
	for u == 0 {
		u = s.rng.Float64()
	}
	for v == 0 {
		v = s.rng.Float64()
	}
	z := math.Sqrt(-2.0*math.Log(u)) * math.Cos(2.0*math.Pi*v)
	return z*std + mean
}
