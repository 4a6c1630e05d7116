// Package rng provides the single deterministic random-number stream shared
// sequentially by every stochastic module in a run, per spec §5.
package rng

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Stream wraps one seeded *rand.Rand. All stochastic modules draw from the
// same Stream, in module declaration order, so that a run is fully
// reproducible from its seed.
type Stream struct {
	src *rand.Rand
}

// New seeds a fresh deterministic Stream.
func New(seed int64) *Stream {
	return &Stream{src: rand.New(rand.NewSource(uint64(seed)))}
}

// Uniform draws one value in [0,1).
func (s *Stream) Uniform() float64 {
	return s.src.Float64()
}

// Gaussian draws one standard-normal value.
func (s *Stream) Gaussian() float64 {
	return s.src.NormFloat64()
}

// Normal draws from a Normal(mean, sigma) distribution.
func (s *Stream) Normal(mean, sigma float64) float64 {
	if sigma <= 0 {
		return mean
	}
	d := distuv.Normal{Mu: mean, Sigma: sigma, Src: s.src}
	return d.Rand()
}

// Poisson draws from a Poisson(lambda) distribution, rounded to the nearest
// non-negative integer.
func (s *Stream) Poisson(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	d := distuv.Poisson{Lambda: lambda, Src: s.src}
	return int(d.Rand())
}

// LogNormal draws exp(a + b*N(0,1)) for a positive mean with fractional
// sigma, matching spec §4.3's numeric semantics exactly: b = sqrt(ln(1+σ²/μ²)),
// a = ln(μ) - b²/2. For mean <= 0 it returns 0 without drawing.
func (s *Stream) LogNormal(mean, sigma float64) float64 {
	if mean <= 0 {
		return 0
	}
	return logNormalDraw(mean, sigma, s.src.NormFloat64())
}
