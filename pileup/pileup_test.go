package pileup

import (
	"testing"

	"github.com/hepsim/colreco/candidate"
	"github.com/hepsim/colreco/modpipe"
	"github.com/hepsim/colreco/pdgtable"
	"github.com/hepsim/colreco/reccfg"
	"github.com/hepsim/colreco/rng"
	"github.com/stretchr/testify/require"
	"log/slog"
	"os"
)

func newTestContext(t *testing.T) (*modpipe.Context, *modpipe.Registry) {
	reg := modpipe.NewRegistry()
	ctx := &modpipe.Context{
		Registry: reg,
		RNG:      rng.New(1),
		PDG:      pdgtable.Default(),
		Pool:     candidate.NewPool(),
		Logger:   slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}
	return ctx, reg
}

func TestZeroMeanPileUpAddsNothing(t *testing.T) {
	ctx, reg := newTestContext(t)
	src, err := reg.ExportArray("upstream", "allParticles")
	require.NoError(t, err)
	_, err = reg.ExportArray("upstream", "stableParticles")
	require.NoError(t, err)

	m := New("PileUpMerger")
	block := reccfg.EmptyBlock()
	require.NoError(t, m.Init(ctx.ForModule(m.Name(), block)))
	require.NoError(t, reg.Resolve())

	src.Append(ctx.Pool.NewCandidate())
	require.NoError(t, m.Process(ctx.ForModule(m.Name(), block)))

	require.Len(t, m.outAll.Candidates, 1)
	require.Empty(t, m.outStable.Candidates)
	require.Len(t, m.npu.Candidates, 1)
	require.Zero(t, m.npu.Candidates[0].Momentum.E)
}
