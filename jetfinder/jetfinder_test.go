package jetfinder

import (
	"testing"

	"github.com/hepsim/colreco/candidate"
	"github.com/stretchr/testify/require"
)

func TestMedianOddAndEven(t *testing.T) {
	require.Equal(t, 2.0, median([]float64{3, 1, 2}))
	require.Equal(t, 2.5, median([]float64{1, 2, 3, 4}))
	require.Equal(t, 0.0, median(nil))
}

func TestKeyOfIsStableUnderIdenticalValues(t *testing.T) {
	v := candidate.FourVector{Px: 1.23456, Py: -2.5, Pz: 0, E: 10}
	require.Equal(t, keyOf(v), keyOf(v))
}

func TestWrapPhiStaysInRange(t *testing.T) {
	require.InDelta(t, 0, wrapPhi(2*3.14159265358979), 1e-6)
	require.InDelta(t, -1, wrapPhi(-1), 1e-9)
}

func TestMax0ClampsNegative(t *testing.T) {
	require.Equal(t, 0.0, max0(-5))
	require.Equal(t, 3.0, max0(3))
}
