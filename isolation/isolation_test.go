package isolation

import (
	"log/slog"
	"math"
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
		RNG:      rng.New(3),
		PDG:      pdgtable.Default(),
		Pool:     candidate.NewPool(),
		Logger:   slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}
	return ctx, reg
}

func setup(t *testing.T) (*modpipe.Context, *Module, *modpipe.Array, *modpipe.Array, *modpipe.Array, *modpipe.Array) {
	ctx, reg := newTestContext()
	photons, err := reg.ExportArray("upstream", "photons")
	require.NoError(t, err)
	tracks, err := reg.ExportArray("upstream", "eflowTracks")
	require.NoError(t, err)
	towers, err := reg.ExportArray("upstream", "eflowTowers")
	require.NoError(t, err)
	rho, err := reg.ExportArray("upstream", "rho")
	require.NoError(t, err)

	m := New("PhotonIsolation")
	require.NoError(t, m.Init(ctx.ForModule(m.Name(), reccfg.EmptyBlock())))
	require.NoError(t, reg.Resolve())
	return ctx, m, photons, tracks, towers, rho
}

func TestNoNearbyActivityGivesZeroIsolation(t *testing.T) {
	ctx, m, photons, _, _, _ := setup(t)

	photon := ctx.Pool.NewCandidate()
	photon.Momentum = candidate.FourVector{Px: 50, Py: 0, Pz: 0, E: 50}
	photons.Append(photon)

	require.NoError(t, m.Process(ctx.ForModule(m.Name(), reccfg.EmptyBlock())))

	require.Len(t, m.output.Candidates, 1)
	out := m.output.Candidates[0]
	require.Zero(t, out.TrackIsolationVar)
	require.Zero(t, out.IsolationVarDBeta)
}

func TestPileUpTrackSuppressedByBeta(t *testing.T) {
	ctx, m, photons, tracks, _, _ := setup(t)

	photon := ctx.Pool.NewCandidate()
	photon.Momentum = candidate.FourVector{Px: 50, Py: 0, Pz: 0, E: 50}
	photons.Append(photon)

	puTrack := ctx.Pool.NewCandidate()
	puTrack.IsPU = true
	puTrack.Momentum = candidate.FourVector{Px: 5, Py: 0.01, Pz: 0, E: 5}
	tracks.Append(puTrack)

	require.NoError(t, m.Process(ctx.ForModule(m.Name(), reccfg.EmptyBlock())))

	out := m.output.Candidates[0]
	// a pure pile-up track contributes nothing to the non-pile-up charged
	// sum, but subtracts from IsolationVarDBeta scaled by beta.
	require.Zero(t, out.TrackIsolationVar)
	require.InDelta(t, -math.Hypot(5, 0.01)/50, out.IsolationVarDBeta, 1e-9)
}
