package btag

import "github.com/hepsim/colreco/candidate"

const lheMatchDeltaR = 0.001

// algoFlavourResult bundles the five algorithmic-derivation outputs spec
// §4.5 names.
type algoFlavourResult struct {
	nearest2  int32
	highestPt int32
	heaviest  int32
	algo      int32
	def       int32
}

// algoFlavour implements spec §4.5's Algorithmic derivation. It treats the
// documented semantics here as authoritative rather than reproducing the
// source's latent continue-inside-inner-block behavior (Open Question 1,
// resolved in DESIGN.md).
func algoFlavour(jet *candidate.Candidate, partons []classifiedParton, lheParticles []classifiedParton, allParticles []*candidate.Candidate, deltaR float64) algoFlavourResult {
	var matched []classifiedParton
	for _, p := range partons {
		if matchesAnyLHEParton(p.c, lheParticles) {
			continue
		}
		if hasPartonDaughter(p.c, allParticles) {
			continue
		}
		if deltaRTo(p.c, jet) > deltaR {
			continue
		}
		matched = append(matched, p)
	}

	var result algoFlavourResult
	result.def = defaultFlavour(jet, partons, deltaR)

	if len(matched) == 0 {
		return result
	}

	nearest := matched[0]
	bestDR := deltaRTo(nearest.c, jet)
	var highestPt classifiedParton
	bestPt := -1.0
	hasB, hasC := false, false
	var bPID, cPID int32

	for _, p := range matched {
		if dr := deltaRTo(p.c, jet); dr < bestDR {
			bestDR, nearest = dr, p
		}
		if pt := p.c.Pt(); pt > bestPt {
			bestPt, highestPt = pt, p
		}
		a := abs32(p.c.PID)
		switch {
		case a == 5:
			hasB, bPID = true, a
		case a == 4:
			hasC, cPID = true, a
		}
	}

	result.nearest2 = abs32(nearest.c.PID)
	result.highestPt = abs32(highestPt.c.PID)

	switch {
	case hasB:
		result.heaviest = bPID
	case hasC:
		result.heaviest = cPID
	default:
		result.heaviest = 0
	}

	if result.heaviest != 0 {
		result.algo = result.heaviest
	} else {
		result.algo = result.highestPt
	}

	return result
}

// defaultFlavour implements GetAlgoFlavour's pdgCodeMax accumulation: it
// scans every in-cone parton by distance alone, with no LHE-duplicate or
// daughter filtering, unlike the matched set the other algorithmic
// variants are derived from.
func defaultFlavour(jet *candidate.Candidate, partons []classifiedParton, deltaR float64) int32 {
	hasGluon := false
	var maxQuark int32
	for _, p := range partons {
		if deltaRTo(p.c, jet) > deltaR {
			continue
		}
		a := abs32(p.c.PID)
		if a == 21 {
			hasGluon = true
		} else if a > maxQuark {
			maxQuark = a
		}
	}
	switch {
	case maxQuark > 0:
		return maxQuark
	case hasGluon:
		return 21
	default:
		return 0
	}
}

// matchesAnyLHEParton reports whether p matches an LHE parton within
// ΔR<0.001 with the same PID and charge, the double-counting filter spec
// §4.5 describes.
func matchesAnyLHEParton(p *candidate.Candidate, lheParticles []classifiedParton) bool {
	for _, lhe := range lheParticles {
		if lhe.c.PID != p.PID || lhe.c.Charge != p.Charge {
			continue
		}
		if deltaRTo(p, lhe.c) < lheMatchDeltaR {
			return true
		}
	}
	return false
}

// hasPartonDaughter reports whether any of p's daughters (looked up by
// index in allParticles) is itself a quark or gluon, meaning p is not the
// final copy in its shower line.
func hasPartonDaughter(p *candidate.Candidate, allParticles []*candidate.Candidate) bool {
	for _, d := range []int32{p.D1, p.D2} {
		if d < 0 || int(d) >= len(allParticles) {
			continue
		}
		if isQuarkOrGluon(allParticles[d].PID) {
			return true
		}
	}
	return false
}
