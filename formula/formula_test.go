package formula

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConstantFormula(t *testing.T) {
	f := MustCompile("0.6")
	v, err := f.Eval(Vars{})
	require.NoError(t, err)
	require.Equal(t, 0.6, v)
}

func TestResolutionFormula(t *testing.T) {
	f := MustCompile("0.02*sqrt(pt)/pt")
	v, err := f.Eval(Vars{Pt: 100})
	require.NoError(t, err)
	require.InDelta(t, 0.02/10, v, 1e-9)
}

func TestCoshEtaFormula(t *testing.T) {
	f := MustCompile("energy/cosh(eta)")
	v, err := f.Eval(Vars{Energy: 100, Eta: 0})
	require.NoError(t, err)
	require.InDelta(t, 100, v, 1e-9)
}

func TestDivisionByZeroIsNumericError(t *testing.T) {
	f := MustCompile("1/0")
	_, err := f.Eval(Vars{})
	require.Error(t, err)
}
