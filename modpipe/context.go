package modpipe

import (
	"log/slog"

	"github.com/hepsim/colreco/candidate"
	"github.com/hepsim/colreco/pdgtable"
	"github.com/hepsim/colreco/reccfg"
	"github.com/hepsim/colreco/rng"
)

// Context bundles the collaborators every module's Init/Process/Finish
// needs: the named-array registry, this module's configuration block, the
// one shared random stream, the shared PDG table, the per-event pool, and a
// module-tagged logger. The teacher threads "configuration", "logger", and
// "dbConn" as ad hoc package globals; Context tightens that into one
// explicit struct passed to every module while keeping the same idea of "a
// few shared collaborators available to every processing function".
type Context struct {
	Registry *Registry
	Config   *reccfg.Block
	RNG      *rng.Stream
	PDG      *pdgtable.Table
	Pool     *candidate.Pool
	Logger   *slog.Logger
}

// ForModule returns a copy of ctx scoped to name: its own config block and a
// logger tagged with a "module" attribute, sharing every other collaborator.
func (ctx *Context) ForModule(name string, block *reccfg.Block) *Context {
	return &Context{
		Registry: ctx.Registry,
		Config:   block,
		RNG:      ctx.RNG,
		PDG:      ctx.PDG,
		Pool:     ctx.Pool,
		Logger:   ctx.Logger.With("module", name),
	}
}
