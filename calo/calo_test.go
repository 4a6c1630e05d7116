package calo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindBinLowerInclusiveUpperExclusive(t *testing.T) {
	m := &Module{etaEdges: []float64{-1, 0, 1}, phiEdges: [][]float64{{-3, 0, 3}, {-3, 0, 3}}}

	etaBin, phiBin, ok := m.findBin(-1, -3)
	require.True(t, ok)
	require.Equal(t, 0, etaBin)
	require.Equal(t, 0, phiBin)

	// exactly on the last edge falls outside (upper bin does not exist)
	_, _, ok = m.findBin(1, 0)
	require.False(t, ok)
}

func TestFindBinOutsideRange(t *testing.T) {
	m := &Module{etaEdges: []float64{-1, 0, 1}, phiEdges: [][]float64{{-3, 0, 3}, {-3, 0, 3}}}
	_, _, ok := m.findBin(5, 0)
	require.False(t, ok)
}

func TestPackKeyGroupsSameTower(t *testing.T) {
	a := packKey(3, 5, flagTrack, 0)
	b := packKey(3, 5, 0, 1)
	require.Equal(t, a>>32, b>>32, "same (etaBin,phiBin) groups together regardless of flags/index")
}

func TestFractionFallsBackToPIDZero(t *testing.T) {
	m := &Module{fractions: map[int32]energyFraction{0: {ecal: 1, hcal: 0}}}
	require.Equal(t, energyFraction{ecal: 1, hcal: 0}, m.fraction(999))
}
