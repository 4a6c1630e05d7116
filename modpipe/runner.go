package modpipe

import (
	"fmt"

	"github.com/hepsim/colreco/reccfg"
)

// RunStats tallies the per-run summary logged at Finish: events processed
// and events failed (any Process error, event skipped). Recovered is
// reported in that summary, but nothing in the pipeline increments it:
// modules that substitute 0 for a failed formula only log a warning.
type RunStats struct {
	Processed int
	Failed    int
	Recovered int
}

// Runner drives the execution protocol from spec §4.2: Init in declaration
// order, then per event Process in declaration order, then Finish in
// reverse declaration order.
type Runner struct {
	base    *Context
	cfg     map[string]*reccfg.Block
	entries []entry
	Stats   RunStats
}

// NewRunner builds a Runner over base's shared collaborators, reading each
// module's configuration block from cfg by its declared name.
func NewRunner(base *Context, cfg map[string]*reccfg.Block) *Runner {
	return &Runner{base: base, cfg: cfg}
}

// Add registers mod at the end of the declaration order.
func (r *Runner) Add(mod Module) {
	block := r.cfg[mod.Name()]
	if block == nil {
		block = reccfg.EmptyBlock()
	}
	r.entries = append(r.entries, entry{mod: mod, ctx: r.base.ForModule(mod.Name(), block)})
}

// Init runs every module's Init in declaration order, then resolves the
// named-array registry. Init errors are fatal and abort the run, naming the
// offending module and key.
func (r *Runner) Init() error {
	for _, e := range r.entries {
		if err := e.mod.Init(e.ctx); err != nil {
			return fmt.Errorf("init failed for module %q: %w", e.mod.Name(), err)
		}
	}
	if err := r.base.Registry.Resolve(); err != nil {
		return fmt.Errorf("array resolution failed: %w", err)
	}
	return nil
}

// ProcessEvent clears the pool, then runs every module's Process in
// declaration order. The first error from any module stops the event,
// increments Stats.Failed, and is returned to the caller; errors are not
// distinguished by kind.
func (r *Runner) ProcessEvent() error {
	r.base.Pool.Clear()
	for _, e := range r.entries {
		if err := e.mod.Process(e.ctx); err != nil {
			r.Stats.Failed++
			return fmt.Errorf("process failed in module %q: %w", e.mod.Name(), err)
		}
	}
	r.Stats.Processed++
	return nil
}

// Finish runs every module's Finish in reverse declaration order.
func (r *Runner) Finish() error {
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if err := e.mod.Finish(e.ctx); err != nil {
			return fmt.Errorf("finish failed for module %q: %w", e.mod.Name(), err)
		}
	}
	r.base.Logger.Info("run complete",
		"processed", r.Stats.Processed, "failed", r.Stats.Failed, "recovered", r.Stats.Recovered)
	return nil
}
