package genreader

import (
	"errors"
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

func newTestContext() *modpipe.Context {
	return &modpipe.Context{
		Registry: modpipe.NewRegistry(),
		RNG:      rng.New(1),
		PDG:      pdgtable.Default(),
		Pool:     candidate.NewPool(),
		Logger:   slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}
}

type fakeReader struct {
	events []*Event
	errs   []error
	i      int
	closed bool
}

func (f *fakeReader) Next() (*Event, error, bool) {
	if f.i >= len(f.events) {
		return nil, nil, false
	}
	ev, err := f.events[f.i], f.errs[f.i]
	f.i++
	return ev, err, true
}

func (f *fakeReader) Close() error {
	f.closed = true
	return nil
}

func setup(t *testing.T, reader Reader) (*modpipe.Context, *Module) {
	ctx := newTestContext()
	m := New("GenInput", reader)
	require.NoError(t, m.Init(ctx.ForModule(m.Name(), reccfg.EmptyBlock())))
	require.NoError(t, ctx.Registry.Resolve())
	return ctx, m
}

func TestProcessFillsExportedArraysFromOneEvent(t *testing.T) {
	reader := &fakeReader{
		events: []*Event{{
			AllParticles:    []GenParticle{{PID: 21, M1: -1, D1: -1}},
			StableParticles: []GenParticle{{PID: 11, M1: -1, D1: -1}},
			Partons:         []GenParticle{{PID: 5, M1: -1, D1: -1}},
			LHEParticles:    []GenParticle{{PID: -5, M1: -1, D1: -1}},
			Header:          Header{Number: 1, Weight: 1},
		}},
		errs: []error{nil},
	}
	ctx, m := setup(t, reader)

	require.NoError(t, m.Process(ctx))
	require.False(t, m.Done)
	require.Equal(t, int64(1), m.Header.Number)

	arrays := ctx.Registry.ExportedArrays()
	require.Len(t, arrays["allParticles"].Candidates, 1)
	require.Len(t, arrays["stableParticles"].Candidates, 1)
	require.Len(t, arrays["partons"].Candidates, 1)
	require.Len(t, arrays["LHEParticles"].Candidates, 1)
}

func TestProcessSetsDoneOnExhaustion(t *testing.T) {
	reader := &fakeReader{}
	ctx, m := setup(t, reader)

	require.NoError(t, m.Process(ctx))
	require.True(t, m.Done)

	arrays := ctx.Registry.ExportedArrays()
	require.Empty(t, arrays["allParticles"].Candidates)
}

func TestProcessWrapsDecodeFailureAsExternalError(t *testing.T) {
	reader := &fakeReader{
		events: []*Event{{}},
		errs:   []error{errors.New("malformed record")},
	}
	ctx, m := setup(t, reader)

	err := m.Process(ctx)
	require.Error(t, err)
	var extErr *modpipe.ExternalError
	require.ErrorAs(t, err, &extErr)
}

func TestFinishClosesReader(t *testing.T) {
	reader := &fakeReader{}
	ctx, m := setup(t, reader)

	require.NoError(t, m.Finish(ctx))
	require.True(t, reader.closed)
}
