package jetfinder

import (
	"sort"

	"github.com/hepsim/colreco/modpipe"
	"go-hep.org/x/hep/fastjet"
)

// emitRhoEstimates implements spec §4.4 step 3: for each configured η
// range, compute the median background density ρ via the standard
// jet-median estimator and emit one Rho-typed Candidate per range with
// Edges populated.
func (m *Module) emitRhoEstimates(ctx *modpipe.Context, cs *fastjet.ClusterSequence) {
	jetDefRho := fastjet.NewJetDefinition(fastjet.KtAlgorithm, 0.4, fastjet.EScheme, fastjet.BestStrategy)
	bgJets, err := cs.InclusiveJetsFor(jetDefRho)
	if err != nil {
		ctx.Logger.Warn("rho estimator clustering failed", "error", err)
		return
	}
	for _, rng := range m.rhoRanges {
		var densities []float64
		for _, j := range bgJets {
			eta := j.Rapidity()
			if eta < rng[0] || eta > rng[1] {
				continue
			}
			area := j.Area()
			if area <= 0 {
				continue
			}
			densities = append(densities, j.Pt()/area)
		}
		rhoValue := median(densities)

		c := ctx.Pool.NewCandidate()
		c.Momentum.E = rhoValue
		c.Edges = [4]float64{rng[0], rng[1], 0, 0}
		m.rho.Append(c)
	}
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
