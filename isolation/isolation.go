// Package isolation implements the Isolation module: surrounding track and
// tower PT sums in a configurable cone around each reference candidate,
// reduced to the three isolation variables spec §5.6 names. No
// original_source/modules/Isolation.cc exists in the pack; grounded on
// spec.md's Candidate isolation-sum field list and calo.go's per-candidate
// tower-sum accumulation loop.
package isolation

import (
	"math"

	"github.com/hepsim/colreco/candidate"
	"github.com/hepsim/colreco/fourvec"
	"github.com/hepsim/colreco/modpipe"
)

// Module implements modpipe.Module for Isolation.
type Module struct {
	name string

	deltaRMax float64
	ptMin     float64
	beta      float64

	candidates *modpipe.ArrayHandle // reference objects to isolate, e.g. photons
	tracks     *modpipe.ArrayHandle
	towers     *modpipe.ArrayHandle
	rho        *modpipe.ArrayHandle

	output *modpipe.Array
}

func New(name string) *Module {
	return &Module{name: name}
}

func (m *Module) Name() string { return m.name }

func (m *Module) Init(ctx *modpipe.Context) error {
	m.deltaRMax = ctx.Config.GetDouble("DeltaRMax", 0.5)
	m.ptMin = ctx.Config.GetDouble("PTMin", 0.5)
	m.beta = ctx.Config.GetDouble("Beta", 1.0)

	m.candidates = ctx.Registry.ImportArray(m.name, ctx.Config.GetString("CandidateInputArray", "photons"))
	m.tracks = ctx.Registry.ImportArray(m.name, ctx.Config.GetString("IsolationInputArray", "eflowTracks"))
	m.towers = ctx.Registry.ImportArray(m.name, ctx.Config.GetString("TowerInputArray", "eflowTowers"))
	m.rho = ctx.Registry.ImportArray(m.name, ctx.Config.GetString("RhoInputArray", "rho"))

	out, err := ctx.Registry.ExportArray(m.name, m.name+"/candidates")
	if err != nil {
		return err
	}
	m.output = out
	return nil
}

func (m *Module) Finish(ctx *modpipe.Context) error { return nil }

// Process implements spec §5.6's isolation-sum derivation for every
// reference candidate: cone-sum charged tracks and neutral towers,
// distinguishing pile-up contributions, then compute the three variants.
func (m *Module) Process(ctx *modpipe.Context) error {
	for _, ref := range m.candidates.Candidates() {
		out := ref.Clone()

		chargedSum, chargedPUSum := sumTracks(ref, m.tracks.Candidates(), m.deltaRMax, m.ptMin)
		towerSum := sumTowers(ref, m.towers.Candidates(), m.deltaRMax, m.ptMin)

		pt := out.Pt()
		if pt <= 0 {
			m.output.Append(out)
			continue
		}

		out.TrackIsolationVar = chargedSum / pt
		out.IsolationVarDBeta = (chargedSum + towerSum - m.beta*chargedPUSum) / pt
		out.IsolationVarRhoCorr = rhoCorrected(chargedSum, towerSum, pt, m.deltaRMax, out.Eta(), m.rho.Candidates())

		m.output.Append(out)
	}
	return nil
}

// sumTracks returns (chargedSum, chargedPileUpSum) over tracks within
// deltaRMax of ref with PT above ptMin, excluding ref itself via identity
// comparison (a track cannot isolate against its own deposit).
func sumTracks(ref *candidate.Candidate, tracks []*candidate.Candidate, deltaRMax, ptMin float64) (float64, float64) {
	var sum, puSum float64
	for _, t := range tracks {
		if t == ref || t.Pt() < ptMin {
			continue
		}
		if fourvec.DeltaR(ref.Eta(), ref.Phi(), t.Eta(), t.Phi()) > deltaRMax {
			continue
		}
		if t.IsPU {
			puSum += t.Pt()
		} else {
			sum += t.Pt()
		}
	}
	return sum, puSum
}

func sumTowers(ref *candidate.Candidate, towers []*candidate.Candidate, deltaRMax, ptMin float64) float64 {
	var sum float64
	for _, tw := range towers {
		if tw == ref || tw.Pt() < ptMin {
			continue
		}
		if fourvec.DeltaR(ref.Eta(), ref.Phi(), tw.Eta(), tw.Phi()) > deltaRMax {
			continue
		}
		sum += tw.Pt()
	}
	return sum
}

// rhoCorrected applies the density × cone-area subtraction of the first rho
// range (in array order) that covers ref's eta, falling back to the
// uncorrected sum/PT if no rho range covers it.
func rhoCorrected(chargedSum, towerSum, pt, deltaRMax, eta float64, rhoCandidates []*candidate.Candidate) float64 {
	for _, r := range rhoCandidates {
		if eta >= r.Edges[0] && eta <= r.Edges[1] {
			area := math.Pi * deltaRMax * deltaRMax
			return (chargedSum + towerSum - r.Momentum.E*area) / pt
		}
	}
	return (chargedSum + towerSum) / pt
}
