package modpipe

// Module is the unit of work in the pipeline: Init runs once at startup,
// Process runs once per event, Finish runs once at shutdown. Cross-module
// communication is solely through named arrays; no module invokes another
// directly, per spec §4.2.
type Module interface {
	Name() string
	Init(ctx *Context) error
	Process(ctx *Context) error
	Finish(ctx *Context) error
}

// entry pairs a Module with the context scoped to it, computed once when
// the module is added to the Runner and reused for its Init, Process and
// Finish calls.
type entry struct {
	mod Module
	ctx *Context
}
