package genreader

import (
	"testing"

	"github.com/hepsim/colreco/candidate"
	"github.com/stretchr/testify/require"
)

func TestToAllParticlesPreservesIndexOrder(t *testing.T) {
	pool := candidate.NewPool()
	particles := []GenParticle{
		{PID: 11, Status: 1, M1: -1, D1: -1, Px: 1, Py: 0, Pz: 0, E: 1},
		{PID: -11, Status: 1, M1: 0, D1: -1, Px: -1, Py: 0, Pz: 0, E: 1},
	}
	out := ToAllParticles(pool, particles)
	require.Len(t, out, 2)
	require.Equal(t, int32(11), out[0].PID)
	require.Equal(t, int32(0), out[1].M1)
}

func TestIsPartonPID(t *testing.T) {
	require.True(t, isPartonPID(5))
	require.True(t, isPartonPID(-5))
	require.True(t, isPartonPID(21))
	require.False(t, isPartonPID(11))
}
