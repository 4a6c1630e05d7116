// Package metbuilder computes the per-event MissingET and ScalarHT header
// scalars from an input object array, per spec §5.6 and §3. No
// original_source/modules/Merger.cc exists in the pack; grounded directly
// on spec.md §3's MissingET/ScalarHT event-header-entity description.
package metbuilder

import (
	"math"

	"github.com/hepsim/colreco/candidate"
	"github.com/hepsim/colreco/modpipe"
)

// Module implements modpipe.Module for MissingET/ScalarHT.
type Module struct {
	name string

	input *modpipe.ArrayHandle

	missingET *modpipe.Array
	scalarHT  *modpipe.Array
}

func New(name string) *Module {
	return &Module{name: name}
}

func (m *Module) Name() string { return m.name }

func (m *Module) Init(ctx *modpipe.Context) error {
	m.input = ctx.Registry.ImportArray(m.name, ctx.Config.GetString("InputArray", "eflowTracks"))

	met, err := ctx.Registry.ExportArray(m.name, ctx.Config.GetString("MomentumOutputArray", "MissingET"))
	if err != nil {
		return err
	}
	m.missingET = met

	ht, err := ctx.Registry.ExportArray(m.name, ctx.Config.GetString("ScalarOutputArray", "ScalarHT"))
	if err != nil {
		return err
	}
	m.scalarHT = ht
	return nil
}

func (m *Module) Finish(ctx *modpipe.Context) error { return nil }

// Process sums the negative vector PT of every input candidate into one
// MissingET Candidate and the scalar sum of |PT| into one ScalarHT
// Candidate, per spec §3.
func (m *Module) Process(ctx *modpipe.Context) error {
	var px, py float64
	var scalarSum float64
	for _, c := range m.input.Candidates() {
		px += c.Momentum.Px
		py += c.Momentum.Py
		scalarSum += c.Pt()
	}

	met := ctx.Pool.NewCandidate()
	metPt := math.Hypot(px, py)
	met.Momentum = candidate.FourVector{
		Px: -px,
		Py: -py,
		Pz: 0,
		E:  metPt,
	}
	m.missingET.Append(met)

	ht := ctx.Pool.NewCandidate()
	ht.Momentum.E = scalarSum
	m.scalarHT.Append(ht)

	return nil
}
