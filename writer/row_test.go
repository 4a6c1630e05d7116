package writer

import (
	"testing"

	"github.com/hepsim/colreco/candidate"
	"github.com/stretchr/testify/require"
)

func TestToRowFlattensKinematicsAndTags(t *testing.T) {
	pool := candidate.NewPool()
	c := pool.NewCandidate()
	c.Momentum = candidate.FourVector{Px: 3, Py: 4, Pz: 0, E: 5}
	c.PID = 5
	c.IsPU = true
	c.WTag = true
	c.Flavour.Algo = 5
	c.BTag.Algo = 1

	row := toRow(c)

	require.InDelta(t, 3, row.Px, 1e-9)
	require.InDelta(t, 4, row.Py, 1e-9)
	require.InDelta(t, 5, row.E, 1e-9)
	require.Equal(t, int32(5), row.PID)
	require.Equal(t, int32(1), row.IsPU)
	require.Equal(t, int32(1), row.WTag)
	require.Equal(t, int32(0), row.TopTag)
	require.Equal(t, int32(5), row.FlavourAlgo)
	require.Equal(t, uint32(1), row.BTagAlgo)
}
