package rng

import "math"

// logNormalDraw implements the log-normal smearing numeric semantics from
// spec §4.3: for mean μ ≤ 0, return 0 without consuming gaussian. Otherwise
// b = sqrt(ln(1+σ²/μ²)), a = ln(μ) - b²/2, result = exp(a + b*gaussian).
func logNormalDraw(mean, sigma, gaussian float64) float64 {
	if mean <= 0 {
		return 0
	}
	b := math.Sqrt(math.Log(1 + (sigma*sigma)/(mean*mean)))
	a := math.Log(mean) - b*b/2
	return math.Exp(a + b*gaussian)
}
