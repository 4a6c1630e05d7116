package reccfg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleYAML = `
random_seed: 7
max_events: 100
modules:
  - PileUpMerger
  - Calorimeter
blocks:
  Calorimeter:
    TimingEMin: 4.0
    ECalResolutionFormula: "0.02*sqrt(pt)/pt"
    EtaPhiBins:
      - ["-3.0", "-2.5", "0.1"]
      - ["-2.5", "-2.0", "0.1"]
`

func TestParseSplitsScalarsAndParams(t *testing.T) {
	doc, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	require.Equal(t, 7, doc.RandomSeed)
	require.Equal(t, []string{"PileUpMerger", "Calorimeter"}, doc.Modules)

	calo := doc.Block("Calorimeter")
	require.InDelta(t, 4.0, calo.GetDouble("TimingEMin", 0), 1e-9)
	require.Equal(t, "0.02*sqrt(pt)/pt", calo.GetString("ECalResolutionFormula", ""))

	rows := calo.GetParam("EtaPhiBins")
	require.Len(t, rows, 2)
	require.Equal(t, []string{"-3.0", "-2.5", "0.1"}, rows[0])
}

func TestMissingKeyReturnsDefault(t *testing.T) {
	b := EmptyBlock()
	require.Equal(t, 42, b.GetInt("missing", 42))
	require.False(t, b.Has("missing"))
}
