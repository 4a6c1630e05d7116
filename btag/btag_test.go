package btag

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
		RNG:      rng.New(7),
		PDG:      pdgtable.Default(),
		Pool:     candidate.NewPool(),
		Logger:   slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}
	return ctx, reg
}

func setup(t *testing.T, cfg string) (*modpipe.Context, *Module, *modpipe.Array, *modpipe.Array, *modpipe.Array, *modpipe.Array) {
	ctx, reg := newTestContext()
	partons, err := reg.ExportArray("upstream", "partons")
	require.NoError(t, err)
	lhe, err := reg.ExportArray("upstream", "LHEParticles")
	require.NoError(t, err)
	all, err := reg.ExportArray("upstream", "allParticles")
	require.NoError(t, err)
	jets, err := reg.ExportArray("upstream", "jets")
	require.NoError(t, err)

	m := New("BTagging")
	block := reccfg.EmptyBlock()
	if cfg != "" {
		doc, err := reccfg.Parse([]byte(cfg))
		require.NoError(t, err)
		block = doc.Block("BTagging")
	}
	require.NoError(t, m.Init(ctx.ForModule(m.Name(), block)))
	require.NoError(t, reg.Resolve())
	return ctx, m, partons, lhe, all, jets
}

func jetAt(pool *candidate.Pool, eta float64) *candidate.Candidate {
	j := pool.NewCandidate()
	j.Momentum = candidate.FourVector{Px: 100, Py: 0, Pz: 100 * eta, E: 200}
	return j
}

func TestBitSetWhenEfficiencyIsOne(t *testing.T) {
	cfg := `
modules: [BTagging]
blocks:
  BTagging:
    BitNumber: 0
    DeltaR: 0.5
    EfficiencyFormula:
      - [0, "0.01"]
      - [5, "1.0"]
`
	ctx, m, partonsArr, _, allArr, jetsArr := setup(t, cfg)

	parton := ctx.Pool.NewCandidate()
	parton.PID = 5
	parton.Status = 71
	parton.D1, parton.D2 = -1, -1
	parton.Momentum = candidate.FourVector{Px: 30, Py: 0, Pz: 0, E: 60}
	partonsArr.Append(parton)
	allArr.Append(parton)

	jet := jetAt(ctx.Pool, 0)
	jetsArr.Append(jet)

	require.NoError(t, m.Process(ctx.ForModule(m.Name(), reccfg.EmptyBlock())))

	require.Equal(t, int32(5), jet.Flavour.Heaviest)
	require.NotZero(t, jet.BTag.Heaviest&(1<<0))
}

func TestUnmatchedJetGetsDefaultFlavourZero(t *testing.T) {
	cfg := `
modules: [BTagging]
blocks:
  BTagging:
    BitNumber: 0
    EfficiencyFormula:
      - [0, "0.0"]
`
	ctx, m, _, _, _, jetsArr := setup(t, cfg)
	jet := jetAt(ctx.Pool, 3.5)
	jetsArr.Append(jet)

	require.NoError(t, m.Process(ctx.ForModule(m.Name(), reccfg.EmptyBlock())))

	require.Equal(t, int32(0), jet.Flavour.Algo)
	require.Equal(t, int32(0), jet.Flavour.Default)
	require.Equal(t, uint32(0), jet.BTag.Default)
}

func TestSameFlavourContaminantDoesNotResetPhysicsFlavour(t *testing.T) {
	ctx, _, _, _, _, _ := setup(t, "")

	lheParton := ctx.Pool.NewCandidate()
	lheParton.PID = 5
	lheParton.Status = 1
	lheParton.Momentum = candidate.FourVector{Px: 30, Py: 0, Pz: 0, E: 60}

	contaminant := ctx.Pool.NewCandidate()
	contaminant.PID = 5
	contaminant.D1, contaminant.D2 = 0, -1 // marks it as decaying, a required gate
	contaminant.Momentum = candidate.FourVector{Px: 20, Py: 0, Pz: 0, E: 40}

	jet := jetAt(ctx.Pool, 0)

	lhePartons := []classifiedParton{{c: lheParton, index: 0}}
	allParticles := []*candidate.Candidate{contaminant}

	result := physicsFlavour(jet, lhePartons, allParticles, 0.5)
	require.Equal(t, int32(5), result.physics)
}

func TestHeaviestPrefersBottomOverCharm(t *testing.T) {
	ctx, _ := newTestContext()

	b := ctx.Pool.NewCandidate()
	b.PID = 5
	b.Status = 71
	b.D1, b.D2 = -1, -1
	b.Momentum = candidate.FourVector{Px: 30, Py: 0, Pz: 0, E: 60}

	c := ctx.Pool.NewCandidate()
	c.PID = 4
	c.Status = 71
	c.D1, c.D2 = -1, -1
	c.Momentum = candidate.FourVector{Px: 10, Py: 5, Pz: 0, E: 20}

	jet := jetAt(ctx.Pool, 0)
	partons := []classifiedParton{{c: b, index: 0}, {c: c, index: 1}}

	result := algoFlavour(jet, partons, nil, []*candidate.Candidate{b, c}, 0.5)
	require.Equal(t, int32(5), result.heaviest)
	require.Equal(t, int32(5), result.algo)
}
