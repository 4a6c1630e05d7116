package metbuilder

import (
	"log/slog"
	"os"
	"testing"

	"github.com/hepsim/colreco/candidate"
	"github.com/hepsim/colreco/modpipe"
	"github.com/hepsim/colreco/pdgtable"
	"github.com/hepsim/colreco/reccfg"
	"github.com/hepsim/colreco/rng"
	"github.com/stretchr/testify/require"
)

func newTestContext() (*modpipe.Context, *modpipe.Registry) {
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

func TestBalancedInputGivesZeroMissingET(t *testing.T) {
	ctx, reg := newTestContext()
	input, err := reg.ExportArray("upstream", "eflowTracks")
	require.NoError(t, err)

	m := New("MissingET")
	require.NoError(t, m.Init(ctx.ForModule(m.Name(), reccfg.EmptyBlock())))
	require.NoError(t, reg.Resolve())

	a := ctx.Pool.NewCandidate()
	a.Momentum = candidate.FourVector{Px: 10, Py: 0, Pz: 0, E: 10}
	b := ctx.Pool.NewCandidate()
	b.Momentum = candidate.FourVector{Px: -10, Py: 0, Pz: 0, E: 10}
	input.Append(a)
	input.Append(b)

	require.NoError(t, m.Process(ctx.ForModule(m.Name(), reccfg.EmptyBlock())))

	require.Len(t, m.missingET.Candidates, 1)
	require.InDelta(t, 0, m.missingET.Candidates[0].Pt(), 1e-9)
	require.Len(t, m.scalarHT.Candidates, 1)
	require.InDelta(t, 20, m.scalarHT.Candidates[0].Momentum.E, 1e-9)
}

func TestSingleObjectGivesBalancingMissingET(t *testing.T) {
	ctx, reg := newTestContext()
	input, err := reg.ExportArray("upstream", "eflowTracks")
	require.NoError(t, err)

	m := New("MissingET")
	require.NoError(t, m.Init(ctx.ForModule(m.Name(), reccfg.EmptyBlock())))
	require.NoError(t, reg.Resolve())

	a := ctx.Pool.NewCandidate()
	a.Momentum = candidate.FourVector{Px: 30, Py: 40, Pz: 0, E: 50}
	input.Append(a)

	require.NoError(t, m.Process(ctx.ForModule(m.Name(), reccfg.EmptyBlock())))

	met := m.missingET.Candidates[0]
	require.InDelta(t, 50, met.Pt(), 1e-9)
	require.InDelta(t, -30, met.Momentum.Px, 1e-9)
	require.InDelta(t, -40, met.Momentum.Py, 1e-9)
}
