package btag

import "github.com/hepsim/colreco/candidate"

const contaminationConeR = 0.7

// physicsFlavourResult bundles the Physics-derivation outputs.
type physicsFlavourResult struct {
	nearest3 int32
	physics  int32
}

// physicsFlavour implements spec §4.5's Physics derivation.
func physicsFlavour(jet *candidate.Candidate, lheParticles []classifiedParton, allParticles []*candidate.Candidate, deltaR float64) physicsFlavourResult {
	var result physicsFlavourResult

	// tempNearest/minDr in GetPhysicsFlavour are updated over every LHE
	// parton unconstrained by cone distance; only the in-cone count and
	// the physics derivation below are gated by deltaR.
	if len(lheParticles) > 0 {
		nearest := lheParticles[0]
		bestDR := deltaRTo(nearest.c, jet)
		for _, p := range lheParticles[1:] {
			if dr := deltaRTo(p.c, jet); dr < bestDR {
				bestDR, nearest = dr, p
			}
		}
		result.nearest3 = abs32(nearest.c.PID)
	}

	var inCone []classifiedParton
	for _, p := range lheParticles {
		if deltaRTo(p.c, jet) <= deltaR {
			inCone = append(inCone, p)
		}
	}

	if len(inCone) != 1 {
		return result
	}

	initial := inCone[0]
	initialPID := abs32(initial.c.PID)
	result.physics = initialPID

	for i, c := range allParticles {
		if abs32(c.PID) < 4 || abs32(c.PID) == 21 {
			continue
		}
		if c.D1 < 0 && c.D2 < 0 {
			continue // not decaying
		}
		if deltaRTo(c, jet) >= contaminationConeR {
			continue
		}
		if abs32(c.PID) == initialPID {
			continue // same-flavour contaminant never resets
		}
		if !hasMother(c, initial.index) {
			result.physics = 0
			break
		}
		_ = i
	}

	return result
}

// hasMother reports whether c's M1 or M2 points at partonIndex in
// allParticles, i.e. whether c descends directly from the identified
// initial LHE parton.
func hasMother(c *candidate.Candidate, partonIndex int) bool {
	return int(c.M1) == partonIndex || int(c.M2) == partonIndex
}
