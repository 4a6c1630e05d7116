// Package pdgtable provides the read-only PDG particle-property lookup
// (spec §3 "the PDG particle-property table"). Every module receives it
// through modpipe.Context, but no module calls Lookup or Name: generator
// particles keep the charge and mass their reader supplies.
// Grounded on go-hep.org/x/hep/heppdt, the same go-hep ecosystem family used
// by genreader and jetfinder.
package pdgtable

import "go-hep.org/x/hep/heppdt"

// Table is a thin wrapper over heppdt's default particle-data table.
type Table struct{}

// Default returns the table backed by heppdt's built-in PDG data.
func Default() *Table {
	return &Table{}
}

// Lookup returns the mass (GeV) and charge (units of e) heppdt records for
// pid, and whether an entry exists at all.
func (t *Table) Lookup(pid int32) (mass float64, charge float64, ok bool) {
	p := heppdt.ParticleByID(heppdt.PID(pid))
	if p == nil {
		return 0, 0, false
	}
	return p.Mass, p.Charge, true
}

// Name returns the PDG name for pid, or "" if unknown.
func (t *Table) Name(pid int32) string {
	p := heppdt.ParticleByID(heppdt.PID(pid))
	if p == nil {
		return ""
	}
	return p.Name
}
