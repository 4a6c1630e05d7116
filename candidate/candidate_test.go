package candidate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolClearIsEmptyAndIdempotent(t *testing.T) {
	pool := NewPool()
	pool.NewCandidate()
	pool.NewCandidate()
	require.Equal(t, 2, pool.Len())

	pool.Clear()
	require.Equal(t, 0, pool.Len())

	pool.Clear()
	require.Equal(t, 0, pool.Len())
}

func TestCloneCopiesAttributesWithEmptyComposition(t *testing.T) {
	pool := NewPool()
	src := pool.NewCandidate()
	src.PID = 5
	src.Momentum = FourVector{Px: 1, Py: 2, Pz: 3, E: 10}
	child := pool.NewCandidate()
	src.AddCandidate(child)

	clone := src.Clone()
	require.Equal(t, src.PID, clone.PID)
	require.Equal(t, src.Momentum, clone.Momentum)
	require.Empty(t, clone.Composition())
	require.NotSame(t, src, clone)
}

func TestOverlapsDetectsSharedComposition(t *testing.T) {
	pool := NewPool()
	parent := pool.NewCandidate()
	child := pool.NewCandidate()
	other := pool.NewCandidate()

	parent.AddCandidate(child)

	require.True(t, parent.Overlaps(child))
	require.True(t, child.Overlaps(parent))
	require.False(t, parent.Overlaps(other))
}

func TestMomentumClosureToRelativeTolerance(t *testing.T) {
	v := FourVector{Px: 3, Py: 4, Pz: 12, E: 13.5}
	m2 := v.E*v.E - v.Px*v.Px - v.Py*v.Py - v.Pz*v.Pz
	require.InEpsilon(t, m2, v.M()*v.M()*sign(m2), 1e-4)
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
