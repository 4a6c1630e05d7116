package efficiencydb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRowMirrorsBTagEfficiencyColumns(t *testing.T) {
	r := row{Flavour: 5, MinRun: 100, MaxRun: 200, Formula: "0.7"}
	require.Equal(t, int32(5), r.Flavour)
	require.True(t, r.MinRun <= 150 && r.MaxRun >= 150)
}
