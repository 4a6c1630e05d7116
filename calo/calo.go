// Package calo implements the calorimeter segmentation, hit-binning, and
// resolution model: aggregating tracks and particles into towers, emitting
// photons and energy-flow objects. Grounded on
// original_source/modules/Calorimeter.cc.
package calo

import (
	"fmt"
	"sort"

	"github.com/hepsim/colreco/formula"
	"github.com/hepsim/colreco/modpipe"
)

const defaultTimingEMin = 4.0

// energyFraction is the configurable (fECal, fHCal) pair keyed by PID,
// with a fallback registered under PID 0.
type energyFraction struct {
	ecal, hcal float64
}

// Module implements modpipe.Module for the Calorimeter stage.
type Module struct {
	name string

	etaEdges []float64   // sorted distinct eta edges
	phiEdges [][]float64 // per eta-bin, sorted phi edges

	fractions map[int32]energyFraction

	ecalRes *formula.Formula
	hcalRes *formula.Formula

	timingEMin float64

	particles *modpipe.ArrayHandle
	tracks    *modpipe.ArrayHandle

	towers      *modpipe.Array
	photons     *modpipe.Array
	eflowTracks *modpipe.Array
	eflowTowers *modpipe.Array
}

// New returns a Calorimeter module named name (the registry key used for
// its configuration block and for logging).
func New(name string) *Module {
	return &Module{name: name, fractions: map[int32]energyFraction{}}
}

func (m *Module) Name() string { return m.name }

// Init reads the EtaPhiBins ragged parameter list, the per-PID energy
// fraction map, and the ECal/HCal resolution formulas; imports particles and
// tracks; exports towers, photons, eflowTracks, eflowTowers.
func (m *Module) Init(ctx *modpipe.Context) error {
	rows := ctx.Config.GetParam("EtaPhiBins")
	if len(rows) == 0 {
		return &modpipe.ConfigError{Module: m.name, Key: "EtaPhiBins", Err: fmt.Errorf("required and missing")}
	}
	etaSet := map[float64][]float64{}
	for _, row := range rows {
		if len(row) < 2 {
			return &modpipe.ConfigError{Module: m.name, Key: "EtaPhiBins", Err: fmt.Errorf("row %v too short", row)}
		}
		eta, err := parseFloat(row[0])
		if err != nil {
			return &modpipe.ConfigError{Module: m.name, Key: "EtaPhiBins", Err: err}
		}
		phis := make([]float64, 0, len(row)-1)
		for _, s := range row[1:] {
			p, err := parseFloat(s)
			if err != nil {
				return &modpipe.ConfigError{Module: m.name, Key: "EtaPhiBins", Err: err}
			}
			phis = append(phis, p)
		}
		sort.Float64s(phis)
		etaSet[eta] = phis
	}
	m.etaEdges = make([]float64, 0, len(etaSet))
	for eta := range etaSet {
		m.etaEdges = append(m.etaEdges, eta)
	}
	sort.Float64s(m.etaEdges)
	m.phiEdges = make([][]float64, len(m.etaEdges))
	for i, eta := range m.etaEdges {
		m.phiEdges[i] = etaSet[eta]
	}

	for _, row := range ctx.Config.GetParam("EnergyFraction") {
		if len(row) < 3 {
			continue
		}
		pid, err := parseInt(row[0])
		if err != nil {
			return &modpipe.ConfigError{Module: m.name, Key: "EnergyFraction", Err: err}
		}
		ecal, err := parseFloat(row[1])
		if err != nil {
			return &modpipe.ConfigError{Module: m.name, Key: "EnergyFraction", Err: err}
		}
		hcal, err := parseFloat(row[2])
		if err != nil {
			return &modpipe.ConfigError{Module: m.name, Key: "EnergyFraction", Err: err}
		}
		m.fractions[int32(pid)] = energyFraction{ecal: ecal, hcal: hcal}
	}
	if _, ok := m.fractions[0]; !ok {
		m.fractions[0] = energyFraction{ecal: 1.0, hcal: 0.0}
	}

	ecalExpr := ctx.Config.GetString("ECalResolutionFormula", "0.0")
	hcalExpr := ctx.Config.GetString("HCalResolutionFormula", "0.0")
	var err error
	m.ecalRes, err = formula.Compile(ecalExpr)
	if err != nil {
		return &modpipe.ConfigError{Module: m.name, Key: "ECalResolutionFormula", Err: err}
	}
	m.hcalRes, err = formula.Compile(hcalExpr)
	if err != nil {
		return &modpipe.ConfigError{Module: m.name, Key: "HCalResolutionFormula", Err: err}
	}

	m.timingEMin = ctx.Config.GetDouble("TimingEMin", defaultTimingEMin)

	m.particles = ctx.Registry.ImportArray(m.name, ctx.Config.GetString("ParticleInputArray", "stableParticles"))
	m.tracks = ctx.Registry.ImportArray(m.name, ctx.Config.GetString("TrackInputArray", "tracks"))

	var err2 error
	if m.towers, err2 = ctx.Registry.ExportArray(m.name, ctx.Config.GetString("TowerOutputArray", m.name+"/towers")); err2 != nil {
		return err2
	}
	if m.photons, err2 = ctx.Registry.ExportArray(m.name, ctx.Config.GetString("PhotonOutputArray", m.name+"/photons")); err2 != nil {
		return err2
	}
	if m.eflowTracks, err2 = ctx.Registry.ExportArray(m.name, ctx.Config.GetString("EFlowTrackOutputArray", m.name+"/eflowTracks")); err2 != nil {
		return err2
	}
	if m.eflowTowers, err2 = ctx.Registry.ExportArray(m.name, ctx.Config.GetString("EFlowTowerOutputArray", m.name+"/eflowTowers")); err2 != nil {
		return err2
	}
	return nil
}

func (m *Module) Finish(ctx *modpipe.Context) error { return nil }

func parseFloat(s string) (float64, error) {
	var f float64
	_, err := fmt.Sscanf(s, "%g", &f)
	return f, err
}

func parseInt(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err
}

// findBin returns the eta/phi bin indices for (eta, phi) using
// lower-inclusive, upper-exclusive bisection, or ok=false if outside every
// bin (including exactly on the last edge, per spec §8 boundary case).
func (m *Module) findBin(eta, phi float64) (etaBin, phiBin int, ok bool) {
	if len(m.etaEdges) < 2 {
		return 0, 0, false
	}
	etaBin = upperBound(m.etaEdges, eta) - 1
	if etaBin < 0 || etaBin >= len(m.etaEdges)-1 {
		return 0, 0, false
	}
	phis := m.phiEdges[etaBin]
	if len(phis) < 2 {
		return 0, 0, false
	}
	phiBin = upperBound(phis, phi) - 1
	if phiBin < 0 || phiBin >= len(phis)-1 {
		return 0, 0, false
	}
	return etaBin, phiBin, true
}

// upperBound returns the index of the first element strictly greater than x
// (C++ std::upper_bound semantics), giving lower-inclusive/upper-exclusive
// bin membership when used as findBin does above.
func upperBound(sorted []float64, x float64) int {
	lo, hi := 0, len(sorted)
	for lo < hi {
		mid := (lo + hi) / 2
		if sorted[mid] <= x {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

func (m *Module) fraction(pid int32) energyFraction {
	if f, ok := m.fractions[pid]; ok {
		return f
	}
	return m.fractions[0]
}

// binCenter returns the midpoint of bin index i in a sorted edge slice.
func binCenter(edges []float64, i int) float64 {
	return (edges[i] + edges[i+1]) / 2
}
