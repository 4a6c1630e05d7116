package jetfinder

import (
	"math"
	"sort"

	"github.com/hepsim/colreco/candidate"
	"go-hep.org/x/hep/fastjet"
)

// nSubjettiness computes τ_n via one-pass-kt axes N-subjettiness with the
// given angular exponent β and characteristic jet radius R0, per spec
// §4.4's "compute τ1, τ2, τ3 via one-pass-kt axes N-subjettiness with β=1,
// R0=0.8".
func nSubjettiness(constituents []candidate.FourVector, n int, beta, r0 float64) float64 {
	if len(constituents) == 0 {
		return 0
	}
	axes := onePassKtAxes(constituents, n)
	if len(axes) == 0 {
		return 0
	}

	var numerator, denominator float64
	for _, c := range constituents {
		pt := c.Pt()
		denominator += pt * math.Pow(r0, beta)

		best := math.Inf(1)
		for _, axis := range axes {
			dr := deltaR(c, axis)
			if dr < best {
				best = dr
			}
		}
		numerator += pt * math.Pow(best, beta)
	}
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// onePassKtAxes seeds n axes from an exclusive kt clustering down to n jets,
// then performs one pT-weighted-centroid reassignment pass.
func onePassKtAxes(constituents []candidate.FourVector, n int) []candidate.FourVector {
	if len(constituents) <= n {
		return append([]candidate.FourVector{}, constituents...)
	}
	pjs := make([]fastjet.Jet, len(constituents))
	for i, c := range constituents {
		pjs[i] = fastjet.NewPxPyPzE(c.Px, c.Py, c.Pz, c.E)
	}
	def := fastjet.NewJetDefinition(fastjet.KtAlgorithm, 1.0, fastjet.EScheme, fastjet.BestStrategy)
	cs, err := fastjet.NewClusterSequence(pjs, def)
	if err != nil {
		return nil
	}
	exclusive, err := cs.ExclusiveJets(n)
	if err != nil {
		return nil
	}
	sort.Slice(exclusive, func(i, j int) bool { return exclusive[i].Pt() > exclusive[j].Pt() })

	axes := toFourVectors(exclusive)

	// one reassignment pass: recompute each axis as the pT-weighted
	// centroid of the constituents nearest to it.
	sums := make([]candidate.FourVector, len(axes))
	for _, c := range constituents {
		best, bestDR := 0, math.Inf(1)
		for i, axis := range axes {
			dr := deltaR(c, axis)
			if dr < bestDR {
				bestDR, best = dr, i
			}
		}
		sums[best] = sums[best].Add(c)
	}
	for i, s := range sums {
		if s.Pt() > 0 {
			axes[i] = s
		}
	}
	return axes
}

func deltaR(a, b candidate.FourVector) float64 {
	deta := a.Eta() - b.Eta()
	dphi := wrapPhi(a.Phi() - b.Phi())
	return math.Hypot(deta, dphi)
}

func wrapPhi(d float64) float64 {
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	for d < -math.Pi {
		d += 2 * math.Pi
	}
	return d
}
