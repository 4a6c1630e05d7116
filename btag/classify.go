package btag

import "github.com/hepsim/colreco/candidate"

// classifiedParton pairs a filtered parton with its index into the slice it
// was classified from, needed later for the daughter/mother lookups
// GetAlgoFlavour and GetPhysicsFlavour perform.
type classifiedParton struct {
	c     *candidate.Candidate
	index int
}

// classifyAlgorithmicPartons selects, from the curated partons array, those
// with pT > pT_min and |η| < η_max that are quarks or gluons and whose
// status is non-terminal — i.e. they are expected to radiate further and
// are candidates for the daughter-based "most final copy" filter
// GetAlgoFlavour applies.
func (m *Module) classifyAlgorithmicPartons(partons []*candidate.Candidate) []classifiedParton {
	var out []classifiedParton
	for i, p := range partons {
		if !isQuarkOrGluon(p.PID) {
			continue
		}
		if p.Pt() <= m.partonPtMin || abs64(p.Eta()) >= m.partonEtaMax {
			continue
		}
		if isTerminalStatus(p.Status) {
			continue
		}
		out = append(out, classifiedParton{c: p, index: i})
	}
	return out
}

// classifyLHEPartons selects LHE-level partons with status==1 (matrix
// element final state) meeting the same pT/η gate.
func (m *Module) classifyLHEPartons(lheParticles []*candidate.Candidate) []classifiedParton {
	var out []classifiedParton
	for i, p := range lheParticles {
		if !isQuarkOrGluon(p.PID) {
			continue
		}
		if p.Pt() <= m.partonPtMin || abs64(p.Eta()) >= m.partonEtaMax {
			continue
		}
		if p.Status != 1 {
			continue
		}
		out = append(out, classifiedParton{c: p, index: i})
	}
	return out
}

// isTerminalStatus reports whether status marks a parton as a stable final
// copy rather than an intermediate radiating state. Generator status codes
// vary by shower; this pipeline treats status==1 (and the PYTHIA-style
// decayed-resonance status 2) as terminal, everything else (the typical
// intermediate-parton status range used by hard-process/shower records) as
// non-terminal.
func isTerminalStatus(status int32) bool {
	return status == 1 || status == 2
}

func abs64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
