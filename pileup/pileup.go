// Package pileup implements the PileUpMerger module: overlays minimum-bias
// interactions onto the hard-scatter event. Grounded on
// original_source/modules/PileUpMerger.h (fMeanPileUp, fZVertexSpread,
// fInputBSX/Y, fOutputBSX/Y), specified in full by SPEC_FULL.md §5.6 since
// spec.md leaves this module interface-only.
package pileup

import (
	"math"

	"github.com/hepsim/colreco/candidate"
	"github.com/hepsim/colreco/modpipe"
)

// MinBiasSource supplies stable particles for one minimum-bias interaction,
// e.g. backed by a pre-generated sample file. Optional: when nil, Module
// synthesizes soft charged pions per spec §8 scenario 3.
type MinBiasSource interface {
	NextInteraction() []candidate.FourVector
}

// Module implements modpipe.Module for PileUpMerger.
type Module struct {
	name string

	meanPileUp    float64
	zVertexSpread float64
	inputBSX, inputBSY   float64
	outputBSX, outputBSY float64

	Source MinBiasSource

	allParticles    *modpipe.ArrayHandle
	stableParticles *modpipe.ArrayHandle

	outAll    *modpipe.Array
	outStable *modpipe.Array
	npu       *modpipe.Array
}

func New(name string) *Module { return &Module{name: name} }

func (m *Module) Name() string { return m.name }

func (m *Module) Init(ctx *modpipe.Context) error {
	m.meanPileUp = ctx.Config.GetDouble("MeanPileUp", 0)
	m.zVertexSpread = ctx.Config.GetDouble("ZVertexSpread", 0.05)
	m.inputBSX = ctx.Config.GetDouble("InputBSX", 0)
	m.inputBSY = ctx.Config.GetDouble("InputBSY", 0)
	m.outputBSX = ctx.Config.GetDouble("OutputBSX", 0)
	m.outputBSY = ctx.Config.GetDouble("OutputBSY", 0)

	m.allParticles = ctx.Registry.ImportArray(m.name, ctx.Config.GetString("InputArray", "allParticles"))
	m.stableParticles = ctx.Registry.ImportArray(m.name, ctx.Config.GetString("StableInputArray", "stableParticles"))

	var err error
	if m.outAll, err = ctx.Registry.ExportArray(m.name, ctx.Config.GetString("OutputArray", m.name+"/particles")); err != nil {
		return err
	}
	if m.outStable, err = ctx.Registry.ExportArray(m.name, ctx.Config.GetString("StableOutputArray", m.name+"/stableParticles")); err != nil {
		return err
	}
	if m.npu, err = ctx.Registry.ExportArray(m.name, ctx.Config.GetString("NPUOutputArray", "NPU")); err != nil {
		return err
	}
	return nil
}

func (m *Module) Finish(ctx *modpipe.Context) error { return nil }

// Process draws a pile-up multiplicity, appends IsPU=1 particles for each
// interaction, and emits one NPU scalar Candidate carrying the draw.
func (m *Module) Process(ctx *modpipe.Context) error {
	m.outAll.Reset()
	m.outStable.Reset()
	m.npu.Reset()

	for _, c := range m.allParticles.Candidates() {
		m.outAll.Append(c)
	}
	for _, c := range m.stableParticles.Candidates() {
		m.outStable.Append(c)
	}

	n := ctx.RNG.Poisson(m.meanPileUp)
	for i := 0; i < n; i++ {
		dz := ctx.RNG.Normal(0, m.zVertexSpread)
		interaction := m.interactionParticles(ctx)
		for _, fv := range interaction {
			c := ctx.Pool.NewCandidate()
			c.PID = 211
			c.Status = 1
			c.Charge = 1
			c.Momentum = fv
			c.Position = candidate.FourVector{Px: m.outputBSX, Py: m.outputBSY, Pz: dz, E: 0}
			c.IsPU = true
			m.outAll.Append(c)
			m.outStable.Append(c)
		}
	}

	npu := ctx.Pool.NewCandidate()
	npu.Momentum.E = float64(n)
	m.npu.Append(npu)
	return nil
}

// interactionParticles returns one minimum-bias interaction's worth of
// stable particles: from Source if configured, otherwise a handful of soft
// charged pions synthesized per spec §8 scenario 3.
func (m *Module) interactionParticles(ctx *modpipe.Context) []candidate.FourVector {
	if m.Source != nil {
		return m.Source.NextInteraction()
	}
	const softPions = 3
	const softPt = 0.3
	out := make([]candidate.FourVector, 0, softPions)
	for i := 0; i < softPions; i++ {
		phi := ctx.RNG.Uniform() * 2 * math.Pi
		eta := ctx.RNG.Normal(0, 2.0)
		pt := softPt
		pz := pt * math.Sinh(eta)
		e := math.Sqrt(pt*pt + pz*pz + 0.140*0.140)
		out = append(out, candidate.FourVector{Px: pt * math.Cos(phi), Py: pt * math.Sin(phi), Pz: pz, E: e})
	}
	return out
}
