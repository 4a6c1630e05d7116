package propagator

import (
	"testing"

	"github.com/hepsim/colreco/candidate"
	"github.com/stretchr/testify/require"
)

func TestNeutralParticleProjectsRadially(t *testing.T) {
	m := &Module{radius: 1.29, halfLength: 3.0, bField: 3.8}
	pool := candidate.NewPool()
	p := pool.NewCandidate()
	p.Momentum = candidate.FourVector{Px: 10, Py: 0, Pz: 0, E: 10}
	p.Charge = 0

	pos, ok := m.projectToCalorimeterFace(p)
	require.True(t, ok)
	require.InDelta(t, m.radius, pos.Px, 1e-9)
	require.InDelta(t, 0, pos.Py, 1e-9)
}

func TestLowCurvatureChargedParticleNeverReachesFace(t *testing.T) {
	m := &Module{radius: 1.29, halfLength: 3.0, bField: 3.8}
	pool := candidate.NewPool()
	p := pool.NewCandidate()
	p.Momentum = candidate.FourVector{Px: 0.01, Py: 0, Pz: 0, E: 0.01}
	p.Charge = 1

	_, ok := m.projectToCalorimeterFace(p)
	require.False(t, ok)
}
