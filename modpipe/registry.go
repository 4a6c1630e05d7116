package modpipe

import "github.com/hepsim/colreco/candidate"

// Array is a named, ordered sequence of Candidates. Exactly one module
// exports a given array name; any number of downstream modules may import
// it. Element order is the producer's insertion order and is semantically
// meaningful (e.g. descending pT for jets), per spec §5.
type Array struct {
	Name        string
	Candidates  []*candidate.Candidate
}

// Append adds c to the array, preserving insertion order.
func (a *Array) Append(c *candidate.Candidate) {
	a.Candidates = append(a.Candidates, c)
}

// Reset truncates the array back to empty without reallocating, for reuse
// across events by the module that owns it.
func (a *Array) Reset() {
	a.Candidates = a.Candidates[:0]
}

type pendingImport struct {
	module string
	name   string
	target **Array
}

// Registry is the process-wide directory mapping array path -> Array,
// per spec §3 "named arrays". It is created once per run and lives for the
// run's duration, shared by every module's Context.
type Registry struct {
	exported map[string]*Array
	pending  []pendingImport
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{exported: make(map[string]*Array)}
}

// ExportArray claims ownership of a fresh output array bound to module.
// Export occurs once per name; a second export of the same name is a
// ConfigError (duplicate exported array name).
func (r *Registry) ExportArray(module, name string) (*Array, error) {
	if _, exists := r.exported[name]; exists {
		return nil, &ConfigError{Module: module, Key: name, Err: errDuplicateExport}
	}
	a := &Array{Name: name}
	r.exported[name] = a
	return a, nil
}

// ImportArray borrows the named array for read-only iteration. Resolution is
// lazy: the returned handle is valid only after Resolve succeeds, which the
// Runner calls once every module's Init has run.
func (r *Registry) ImportArray(module, name string) *ArrayHandle {
	h := &ArrayHandle{}
	r.pending = append(r.pending, pendingImport{module: module, name: name, target: &h.array})
	return h
}

// Resolve binds every pending import to its exported array. Called once,
// after all modules' Init methods have returned. Returns a ResolveError
// naming the first unresolved import found.
func (r *Registry) Resolve() error {
	for _, p := range r.pending {
		a, ok := r.exported[p.name]
		if !ok {
			return &ResolveError{Module: p.module, Array: p.name}
		}
		*p.target = a
	}
	return nil
}

// ArrayHandle is the read-only view a module holds over an imported array.
// It stays valid (and current) across events because the exporting module
// mutates the same underlying Array in place every Process call.
type ArrayHandle struct {
	array *Array
}

// Candidates returns the array's current contents. Valid only after the
// registry has been resolved.
func (h *ArrayHandle) Candidates() []*candidate.Candidate {
	if h.array == nil {
		return nil
	}
	return h.array.Candidates
}

// ExportedArrays returns every array currently registered by name, for
// callers (the output writer) that need to enumerate the full set rather
// than import a specific one.
func (r *Registry) ExportedArrays() map[string]*Array {
	return r.exported
}

var errDuplicateExport = duplicateExportError{}

type duplicateExportError struct{}

func (duplicateExportError) Error() string { return "duplicate exported array name" }
