// Package propagator implements the ParticlePropagator module: projecting
// stable-particle trajectories to the calorimeter face and producing tracks
// for charged particles above a configurable pT threshold. Specified in
// full by SPEC_FULL.md §5.6 since spec.md leaves this module
// interface-only; grounded on the teacher's module-shape conventions and
// the formula package for track-resolution smearing.
package propagator

import (
	"math"

	"github.com/hepsim/colreco/candidate"
	"github.com/hepsim/colreco/formula"
	"github.com/hepsim/colreco/modpipe"
)

const speedOfLightToGeVm = 0.2998 // c in units that give R = pT/(0.2998*B) in meters for pT in GeV, B in Tesla

// Module implements modpipe.Module for ParticlePropagator.
type Module struct {
	name string

	radius      float64 // calorimeter inner radius, meters
	halfLength  float64 // calorimeter half-length along z, meters
	bField      float64 // uniform magnetic field, Tesla
	trackPtMin  float64

	trackRes *formula.Formula

	stableParticles *modpipe.ArrayHandle

	particles *modpipe.Array
	tracks    *modpipe.Array
}

func New(name string) *Module { return &Module{name: name} }

func (m *Module) Name() string { return m.name }

func (m *Module) Init(ctx *modpipe.Context) error {
	m.radius = ctx.Config.GetDouble("Radius", 1.29)
	m.halfLength = ctx.Config.GetDouble("HalfLength", 3.0)
	m.bField = ctx.Config.GetDouble("Bz", 3.8)
	m.trackPtMin = ctx.Config.GetDouble("TrackPtMin", 0.5)

	expr := ctx.Config.GetString("TrackResolutionFormula", "0.0")
	var err error
	m.trackRes, err = formula.Compile(expr)
	if err != nil {
		return &modpipe.ConfigError{Module: m.name, Key: "TrackResolutionFormula", Err: err}
	}

	m.stableParticles = ctx.Registry.ImportArray(m.name, ctx.Config.GetString("InputArray", "stableParticles"))

	var err2 error
	if m.particles, err2 = ctx.Registry.ExportArray(m.name, ctx.Config.GetString("OutputArray", m.name+"/particles")); err2 != nil {
		return err2
	}
	if m.tracks, err2 = ctx.Registry.ExportArray(m.name, ctx.Config.GetString("TrackOutputArray", m.name+"/tracks")); err2 != nil {
		return err2
	}
	return nil
}

func (m *Module) Finish(ctx *modpipe.Context) error { return nil }

// Process projects each stable particle's trajectory to the calorimeter
// face, straight-line for neutrals, helical for charged particles in the
// uniform field; particles that never reach the radius are dropped.
func (m *Module) Process(ctx *modpipe.Context) error {
	m.particles.Reset()
	m.tracks.Reset()

	for _, p := range m.stableParticles.Candidates() {
		pos, ok := m.projectToCalorimeterFace(p)
		if !ok {
			continue
		}
		projected := p.Clone()
		projected.Position = pos
		m.particles.Append(projected)

		if p.Charge != 0 && p.Pt() > m.trackPtMin {
			track := p.Clone()
			sigma := m.safeResolution(ctx, p.Pt(), p.Eta())
			track.Position = candidate.FourVector{
				Px: pos.Px + ctx.RNG.Normal(0, sigma),
				Py: pos.Py + ctx.RNG.Normal(0, sigma),
				Pz: pos.Pz,
				E:  pos.E,
			}
			m.tracks.Append(track)
		}
	}
	return nil
}

// projectToCalorimeterFace implements the straight-line (neutral) /
// helical (charged, uniform Bz) trajectory projection. Returns ok=false for
// particles that loop forever inside the radius (transverse momentum too
// low in a non-zero field to ever reach it).
func (m *Module) projectToCalorimeterFace(p *candidate.Candidate) (candidate.FourVector, bool) {
	pt := p.Pt()
	if p.Charge == 0 || m.bField == 0 {
		if pt == 0 {
			return candidate.FourVector{}, false
		}
		s := m.radius / pt * p.Momentum.P()
		tOfFlight := s / speedOfLightAsMetersPerNs()
		return candidate.FourVector{
			Px: m.radius * p.Momentum.Px / pt,
			Py: m.radius * p.Momentum.Py / pt,
			Pz: m.radius * p.Momentum.Pz / pt,
			E:  tOfFlight,
		}, true
	}

	curvatureRadius := pt / (speedOfLightToGeVm * m.bField)
	if curvatureRadius < m.radius/2 {
		// the helix never reaches the calorimeter radius
		return candidate.FourVector{}, false
	}
	phi0 := p.Momentum.Phi()
	charge := float64(p.Charge)
	deltaPhi := math.Asin(m.radius / (2 * curvatureRadius))
	phiAtFace := phi0 - charge*deltaPhi
	x := m.radius * math.Cos(phiAtFace)
	y := m.radius * math.Sin(phiAtFace)
	z := p.Momentum.Pz / pt * m.radius
	if math.Abs(z) > m.halfLength {
		return candidate.FourVector{}, false
	}
	return candidate.FourVector{Px: x, Py: y, Pz: z, E: 0}, true
}

func (m *Module) safeResolution(ctx *modpipe.Context, pt, eta float64) float64 {
	v, err := m.trackRes.Eval(formula.Vars{Pt: pt, Eta: eta})
	if err != nil {
		ctx.Logger.Warn("track resolution formula evaluation failed, substituting 0", "error", err)
		return 0
	}
	return v
}

func speedOfLightAsMetersPerNs() float64 {
	return 0.299792458
}
