// Package btag implements the BTagging module: parton matching, the seven
// flavour-definition variants, and stochastic tag-bit assignment. Grounded
// on original_source/modules/BTagging.cc. The two Open Questions spec §9
// raises about this module are resolved in DESIGN.md: documented §4.5
// semantics are authoritative, and the LHE/post-shower parton arrays are
// filtered independently, never aliased.
package btag

import (
	"fmt"

	"github.com/hepsim/colreco/candidate"
	"github.com/hepsim/colreco/efficiencydb"
	"github.com/hepsim/colreco/formula"
	"github.com/hepsim/colreco/fourvec"
	"github.com/hepsim/colreco/modpipe"
)

// Module implements modpipe.Module for BTagging.
type Module struct {
	name string

	partonPtMin  float64
	partonEtaMax float64
	deltaR       float64
	bitNumber    uint

	efficiency map[int32]*formula.Formula // keyed by |PID|, fallback key 0

	partons      *modpipe.ArrayHandle
	lheParticles *modpipe.ArrayHandle
	allParticles *modpipe.ArrayHandle
	jets         *modpipe.ArrayHandle
}

func New(name string) *Module {
	return &Module{name: name, efficiency: map[int32]*formula.Formula{}}
}

func (m *Module) Name() string { return m.name }

func (m *Module) Init(ctx *modpipe.Context) error {
	m.partonPtMin = ctx.Config.GetDouble("PartonPTMin", 1.0)
	m.partonEtaMax = ctx.Config.GetDouble("PartonEtaMax", 2.5)
	m.deltaR = ctx.Config.GetDouble("DeltaR", 0.5)
	m.bitNumber = uint(ctx.Config.GetInt("BitNumber", 0))

	for _, row := range ctx.Config.GetParam("EfficiencyFormula") {
		if len(row) < 2 {
			continue
		}
		var pid int
		if _, err := fmt.Sscanf(row[0], "%d", &pid); err != nil {
			return &modpipe.ConfigError{Module: m.name, Key: "EfficiencyFormula", Err: err}
		}
		f, err := formula.Compile(row[1])
		if err != nil {
			return &modpipe.ConfigError{Module: m.name, Key: "EfficiencyFormula", Err: err}
		}
		m.efficiency[int32(pid)] = f
	}
	if _, ok := m.efficiency[0]; !ok {
		m.efficiency[0] = formula.MustCompile("0")
	}

	if err := m.applyDBOverrides(ctx); err != nil {
		return err
	}

	m.partons = ctx.Registry.ImportArray(m.name, ctx.Config.GetString("PartonInputArray", "partons"))
	m.lheParticles = ctx.Registry.ImportArray(m.name, ctx.Config.GetString("LHEPartonInputArray", "LHEParticles"))
	m.allParticles = ctx.Registry.ImportArray(m.name, ctx.Config.GetString("ParticleInputArray", "allParticles"))
	m.jets = ctx.Registry.ImportArray(m.name, ctx.Config.GetString("JetInputArray", "jets"))
	return nil
}

func (m *Module) Finish(ctx *modpipe.Context) error { return nil }

// applyDBOverrides loads per-run BTagEfficiency formula overrides from
// MySQL when the pipeline config enables it, replacing any YAML-declared
// formula for the same flavour. NoDB (named after the teacher's own config
// field) defaults to true, so a run with no database configured behaves
// exactly as if this step were absent.
func (m *Module) applyDBOverrides(ctx *modpipe.Context) error {
	if ctx.Config.GetBool("NoDB", true) {
		return nil
	}
	dsn := ctx.Config.GetString("DBDSN", "")
	if dsn == "" {
		return nil
	}

	db, err := efficiencydb.Connect(dsn)
	if err != nil {
		return &modpipe.ExternalError{Module: m.name, Err: err}
	}
	defer db.Close()

	overrides, err := efficiencydb.LoadFormulas(db, ctx.Config.GetInt("RunNumber", 0))
	if err != nil {
		return &modpipe.ExternalError{Module: m.name, Err: err}
	}
	for pid, src := range overrides {
		f, err := formula.Compile(src)
		if err != nil {
			return &modpipe.ConfigError{Module: m.name, Key: "BTagEfficiency", Err: err}
		}
		m.efficiency[abs32(pid)] = f
	}
	return nil
}

func (m *Module) formulaFor(pid int32) *formula.Formula {
	if f, ok := m.efficiency[abs32(pid)]; ok {
		return f
	}
	return m.efficiency[0]
}

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}

func isQuarkOrGluon(pid int32) bool {
	a := abs32(pid)
	return (a >= 1 && a <= 5) || a == 21
}

func deltaRTo(a *candidate.Candidate, b *candidate.Candidate) float64 {
	return fourvec.DeltaR(a.Eta(), a.Phi(), b.Eta(), b.Phi())
}
