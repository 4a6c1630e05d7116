package jetfinder

import (
	"github.com/hepsim/colreco/candidate"
	"go-hep.org/x/hep/fastjet"
)

// substructurePtGate is spec §4.4's "only when jet pT > 200" threshold.
const substructurePtGate = 200.0

// computeSubstructure implements spec §4.4 step 5: trimming, N-subjettiness,
// and the derived boolean tags, plus the pruning/soft-drop variants
// SPEC_FULL.md §5.4 adds using the same Cambridge/Aachen recluster + filter
// machinery FastJetFinder.cc already uses for trimming.
func (m *Module) computeSubstructure(jet *candidate.Candidate, all []fastjet.Jet, lookup map[momKey]*candidate.Candidate, original fastjet.Jet) {
	constituents := constituentMomenta(jet)

	trimmed, trimmedSubjets := trim(constituents, 0.2, 0.05)
	jet.TrimmedMass = max0(trimmed.M())
	jet.NSubJetsTrimmed = len(trimmedSubjets)
	jet.TrimmedSubjets = firstThree(trimmedSubjets)

	massDrop := 1.0
	if jet.TrimmedMass > 0 && len(trimmedSubjets) > 0 {
		largest := largestMass(trimmedSubjets)
		massDrop = largest / jet.TrimmedMass
	}

	pruned, prunedSubjets := prune(constituents, 0.1, 0.5)
	jet.PrunedMass = max0(pruned.M())
	jet.NSubJetsPruned = len(prunedSubjets)
	jet.PrunedSubjets = firstThree(prunedSubjets)

	softDropped, softDropSubjets := softDrop(constituents, 0.0, 0.1)
	jet.SoftDroppedMass = max0(softDropped.M())
	jet.NSubJetsSoftDropped = len(softDropSubjets)
	jet.SoftDroppedSubjets = firstThree(softDropSubjets)

	jet.Tau1 = nSubjettiness(constituents, 1, 1.0, 0.8)
	jet.Tau2 = nSubjettiness(constituents, 2, 1.0, 0.8)
	jet.Tau3 = nSubjettiness(constituents, 3, 1.0, 0.8)

	jet.WTag = massDrop < 0.4 && jet.TrimmedMass > 60 && jet.TrimmedMass < 120
	jet.TopTag = jet.NSubJetsTrimmed >= 3 && jet.TrimmedMass > 140 && jet.TrimmedMass < 230
	jet.HTag = massDrop < 0.4 && jet.TrimmedMass > 100 && jet.TrimmedMass < 140
}

func max0(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}

func constituentMomenta(jet *candidate.Candidate) []candidate.FourVector {
	comp := jet.Composition()
	out := make([]candidate.FourVector, len(comp))
	for i, c := range comp {
		out[i] = c.Momentum
	}
	return out
}

func firstThree(subjets []candidate.FourVector) [3]candidate.FourVector {
	var out [3]candidate.FourVector
	for i := 0; i < 3 && i < len(subjets); i++ {
		out[i] = subjets[i]
	}
	return out
}

func largestMass(subjets []candidate.FourVector) float64 {
	var best float64
	for _, s := range subjets {
		if m := s.M(); m > best {
			best = m
		}
	}
	return best
}
