// Package writer implements the columnar HDF5 output: one group and one
// growable table per exported named array, following the teacher's
// writer.go/hdf5.go idiom (createGroup/createTable/writeArrayToTable)
// generalized from one event-header table per run to one table per
// candidate array.
package writer

import (
	"fmt"
	"sort"

	hdf5 "github.com/jmbenlloch/go-hdf5"
	"golang.org/x/exp/maps"

	"github.com/hepsim/colreco/candidate"
)

// Writer owns one HDF5 file and one table per array name written to it so
// far. Tables are created lazily on first Write call for that name, since
// the set of exported arrays is only known once the pipeline has run.
type Writer struct {
	file   *hdf5.File
	groups map[string]*hdf5.Group
	tables map[string]*hdf5.Dataset
}

// Open creates (truncating) the HDF5 file at path.
func Open(path string) (*Writer, error) {
	f, err := hdf5.CreateFile(path, hdf5.F_ACC_TRUNC)
	if err != nil {
		return nil, fmt.Errorf("writer: create %s: %w", path, err)
	}
	return &Writer{
		file:   f,
		groups: make(map[string]*hdf5.Group),
		tables: make(map[string]*hdf5.Dataset),
	}, nil
}

// WriteArray appends one row per Candidate in candidates to the table for
// name, creating the group and table on first use.
func (w *Writer) WriteArray(name string, candidates []*candidate.Candidate) error {
	table, err := w.tableFor(name)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return nil
	}
	rows := make([]candidateRow, len(candidates))
	for i, c := range candidates {
		rows[i] = toRow(c)
	}
	return appendRows(table, rows)
}

func (w *Writer) tableFor(name string) (*hdf5.Dataset, error) {
	if t, ok := w.tables[name]; ok {
		return t, nil
	}
	group, ok := w.groups[name]
	if !ok {
		g, err := w.file.CreateGroup(name)
		if err != nil {
			return nil, fmt.Errorf("writer: create group %s: %w", name, err)
		}
		w.groups[name] = g
		group = g
	}
	t, err := createTable(group, "data", candidateRow{})
	if err != nil {
		return nil, fmt.Errorf("writer: create table %s: %w", name, err)
	}
	w.tables[name] = t
	return t, nil
}

// Close closes every open table and group, then the file, joining all
// errors encountered rather than stopping at the first one, matching the
// teacher's defensive Close sequence in writer.go.
func (w *Writer) Close() error {
	var errs []error

	names := maps.Keys(w.tables)
	sort.Strings(names)
	for _, name := range names {
		if err := w.tables[name].Close(); err != nil {
			errs = append(errs, fmt.Errorf("writer: close table %s: %w", name, err))
		}
	}

	groupNames := maps.Keys(w.groups)
	sort.Strings(groupNames)
	for _, name := range groupNames {
		if err := w.groups[name].Close(); err != nil {
			errs = append(errs, fmt.Errorf("writer: close group %s: %w", name, err))
		}
	}

	if err := w.file.Close(); err != nil {
		errs = append(errs, fmt.Errorf("writer: close file: %w", err))
	}

	return joinErrors(errs)
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	msg := errs[0].Error()
	for _, e := range errs[1:] {
		msg += "; " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
