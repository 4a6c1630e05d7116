package modpipe

import (
	"testing"

	"github.com/hepsim/colreco/candidate"
	"github.com/stretchr/testify/require"
)

func TestExportThenImportResolves(t *testing.T) {
	r := NewRegistry()
	out, err := r.ExportArray("producer", "jets")
	require.NoError(t, err)

	handle := r.ImportArray("consumer", "jets")
	require.NoError(t, r.Resolve())

	pool := candidate.NewPool()
	out.Append(pool.NewCandidate())
	require.Len(t, handle.Candidates(), 1)
}

func TestDuplicateExportIsConfigError(t *testing.T) {
	r := NewRegistry()
	_, err := r.ExportArray("a", "jets")
	require.NoError(t, err)
	_, err = r.ExportArray("b", "jets")
	require.Error(t, err)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestImportMissingArrayIsResolveError(t *testing.T) {
	r := NewRegistry()
	r.ImportArray("consumer", "nonexistent")
	err := r.Resolve()
	require.Error(t, err)
	var resolveErr *ResolveError
	require.ErrorAs(t, err, &resolveErr)
}
