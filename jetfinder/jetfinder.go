// Package jetfinder implements the FastJetFinder module: clustering via
// go-hep.org/x/hep/fastjet, ρ estimation, and substructure (trimming,
// pruning, soft-drop, N-subjettiness, W/Top/H tagging). Grounded on
// original_source/modules/FastJetFinder.cc.
package jetfinder

import (
	"fmt"
	"math"
	"sort"

	"github.com/hepsim/colreco/candidate"
	"github.com/hepsim/colreco/fourvec"
	"github.com/hepsim/colreco/modpipe"
	"go-hep.org/x/hep/fastjet"
)

// Algorithm mirrors spec §4.4's jet-algorithm enumeration.
type Algorithm int

const (
	JetClu Algorithm = iota
	MidPoint
	SISCone
	KT
	CambridgeAachen
	AntiKT
)

// Module implements modpipe.Module for FastJetFinder.
type Module struct {
	name string

	algorithm  Algorithm
	radius     float64
	jetPtMin   float64
	keepPileUp bool

	rhoRanges [][2]float64
	computeRho bool

	input *modpipe.ArrayHandle

	jets *modpipe.Array
	rho  *modpipe.Array
}

func New(name string) *Module { return &Module{name: name} }

func (m *Module) Name() string { return m.name }

func (m *Module) Init(ctx *modpipe.Context) error {
	m.algorithm = Algorithm(ctx.Config.GetInt("JetAlgorithm", int(AntiKT)))
	m.radius = ctx.Config.GetDouble("ParameterR", 0.5)
	m.jetPtMin = ctx.Config.GetDouble("JetPTMin", 10.0)
	m.keepPileUp = ctx.Config.GetBool("KeepPileUp", false)
	m.computeRho = ctx.Config.GetBool("ComputeRho", false)

	for _, row := range ctx.Config.GetParam("RhoEtaRange") {
		if len(row) < 2 {
			continue
		}
		var lo, hi float64
		if _, err := fmt.Sscanf(row[0], "%g", &lo); err != nil {
			return &modpipe.ConfigError{Module: m.name, Key: "RhoEtaRange", Err: err}
		}
		if _, err := fmt.Sscanf(row[1], "%g", &hi); err != nil {
			return &modpipe.ConfigError{Module: m.name, Key: "RhoEtaRange", Err: err}
		}
		m.rhoRanges = append(m.rhoRanges, [2]float64{lo, hi})
	}

	m.input = ctx.Registry.ImportArray(m.name, ctx.Config.GetString("InputArray", "eflowTracks"))

	var err error
	if m.jets, err = ctx.Registry.ExportArray(m.name, ctx.Config.GetString("JetOutputArray", m.name+"/jets")); err != nil {
		return err
	}
	if m.rho, err = ctx.Registry.ExportArray(m.name, ctx.Config.GetString("RhoOutputArray", m.name+"/rho")); err != nil {
		return err
	}
	return nil
}

func (m *Module) Finish(ctx *modpipe.Context) error { return nil }

func (m *Module) jetAlgorithm() fastjet.JetAlgorithm {
	switch m.algorithm {
	case KT:
		return fastjet.KtAlgorithm
	case CambridgeAachen:
		return fastjet.CambridgeAachenAlgorithm
	default:
		return fastjet.AntiKtAlgorithm
	}
}

// Process implements spec §4.4 steps 1-5.
func (m *Module) Process(ctx *modpipe.Context) error {
	m.jets.Reset()
	m.rho.Reset()

	inputs := m.input.Candidates()
	pseudoJets := make([]fastjet.Jet, 0, len(inputs))
	lookup := make(map[momKey]*candidate.Candidate, len(inputs))
	for _, c := range inputs {
		if !m.keepPileUp && c.IsPU {
			continue
		}
		pj := fastjet.NewJet(c.Momentum.Px, c.Momentum.Py, c.Momentum.Pz, c.Momentum.E)
		pseudoJets = append(pseudoJets, pj)
		lookup[keyOf(c.Momentum)] = c
	}

	def := fastjet.NewJetDefinition(m.jetAlgorithm(), m.radius, fastjet.EScheme, fastjet.BestStrategy)
	cs, err := fastjet.NewClusterSequence(pseudoJets, def)
	if err != nil {
		return &modpipe.ExternalError{Module: m.name, Err: err}
	}

	if m.computeRho {
		m.emitRhoEstimates(ctx, cs)
	}

	inclusive, err := cs.InclusiveJets(m.jetPtMin)
	if err != nil {
		return &modpipe.ExternalError{Module: m.name, Err: err}
	}
	sort.Slice(inclusive, func(i, j int) bool { return inclusive[i].Pt() > inclusive[j].Pt() })

	for _, pj := range inclusive {
		jet := ctx.Pool.NewCandidate()
		jet.Momentum = candidate.FourVector{Px: pj.Px(), Py: pj.Py(), Pz: pj.Pz(), E: pj.E()}

		constituents, err := cs.Constituents(&pj)
		if err != nil {
			return &modpipe.ExternalError{Module: m.name, Err: err}
		}
		var maxDEta, maxDPhi float64
		jetEta, jetPhi := jet.Eta(), jet.Phi()
		for _, cpj := range constituents {
			orig, ok := lookup[keyOf(candidate.FourVector{Px: cpj.Px(), Py: cpj.Py(), Pz: cpj.Pz(), E: cpj.E()})]
			if !ok {
				continue
			}
			jet.AddCandidate(orig)
			deta := math.Abs(fourvec.DeltaEta(orig.Eta(), jetEta))
			dphi := math.Abs(fourvec.DeltaPhi(orig.Phi(), jetPhi))
			if deta > maxDEta {
				maxDEta = deta
			}
			if dphi > maxDPhi {
				maxDPhi = dphi
			}
		}
		jet.DeltaEta = maxDEta
		jet.DeltaPhi = maxDPhi

		if jet.Pt() > substructurePtGate {
			m.computeSubstructure(jet, pseudoJets, lookup, pj)
		}

		m.jets.Append(jet)
	}
	return nil
}
