package btag

import (
	"github.com/hepsim/colreco/candidate"
	"github.com/hepsim/colreco/formula"
	"github.com/hepsim/colreco/modpipe"
)

// Process implements spec §4.5's per-jet classification and tagging.
func (m *Module) Process(ctx *modpipe.Context) error {
	allParticles := m.allParticles.Candidates()
	partons := m.classifyAlgorithmicPartons(m.partons.Candidates())
	lheParticles := m.classifyLHEPartons(m.lheParticles.Candidates())

	for _, jet := range m.jets.Candidates() {
		algo := algoFlavour(jet, partons, lheParticles, allParticles, m.deltaR)
		phys := physicsFlavour(jet, lheParticles, allParticles, m.deltaR)

		jet.Flavour.Algo = algo.algo
		jet.Flavour.Default = algo.def
		jet.Flavour.Nearest2 = algo.nearest2
		jet.Flavour.Heaviest = algo.heaviest
		jet.Flavour.HighestPt = algo.highestPt
		jet.Flavour.Physics = phys.physics
		jet.Flavour.Nearest3 = phys.nearest3

		r := ctx.RNG.Uniform()
		m.tagVariant(ctx, jet, r, &jet.BTag.Algo, algo.algo)
		m.tagVariant(ctx, jet, r, &jet.BTag.Default, algo.def)
		m.tagVariant(ctx, jet, r, &jet.BTag.Nearest2, algo.nearest2)
		m.tagVariant(ctx, jet, r, &jet.BTag.Heaviest, algo.heaviest)
		m.tagVariant(ctx, jet, r, &jet.BTag.HighestPt, algo.highestPt)
		m.tagVariant(ctx, jet, r, &jet.BTag.Physics, phys.physics)
		m.tagVariant(ctx, jet, r, &jet.BTag.Nearest3, phys.nearest3)
	}
	return nil
}

// tagVariant evaluates the efficiency formula keyed by flavour (fallback
// key 0) and sets bit m.bitNumber of *bitmask iff the shared draw r is at
// or below the formula's value. The random draw r is computed once per jet
// by the caller and shared across all seven variants, per spec §4.5's
// deliberate correlation-preserving design.
func (m *Module) tagVariant(ctx *modpipe.Context, jet *candidate.Candidate, r float64, bitmask *uint32, flavour int32) {
	f := m.formulaFor(flavour)
	eff, err := f.Eval(formula.Vars{Pt: jet.Pt(), Eta: jet.Eta()})
	if err != nil {
		ctx.Logger.Warn("b-tag efficiency formula evaluation failed, substituting 0", "error", err)
		eff = 0
	}
	if r <= eff {
		*bitmask |= 1 << m.bitNumber
	}
}
