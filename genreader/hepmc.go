package genreader

import (
	"fmt"
	"os"
	"sort"

	"go-hep.org/x/hep/hepmc"
)

// HepMCReader adapts go-hep.org/x/hep/hepmc to the Reader interface,
// standing in for "the HepMC event reader" spec.md declares out of scope
// but stated-interface.
type HepMCReader struct {
	f *os.File
	d *hepmc.Decoder
}

// OpenHepMC opens filename as a HepMC ASCII event file.
func OpenHepMC(filename string) (*HepMCReader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("genreader: open %s: %w", filename, err)
	}
	return &HepMCReader{f: f, d: hepmc.NewDecoder(f)}, nil
}

func (hr *HepMCReader) Close() error { return hr.f.Close() }

// Next decodes the next HepMC event. Any decode error, a malformed record
// included, ends the input: Next then reports false with a nil error.
// Mother and daughter indices are not read and stay -1.
func (hr *HepMCReader) Next() (*Event, error, bool) {
	var ev hepmc.Event
	if err := hr.d.Decode(&ev); err != nil {
		return nil, nil, false
	}
	all := make([]GenParticle, 0, len(ev.Particles))
	var stable, partons []GenParticle
	for _, p := range sortedParticles(ev.Particles) {
		gp := GenParticle{
			PID:    int32(p.PdgID),
			Status: int32(p.Status),
			M1:     -1, M2: -1, D1: -1, D2: -1,
			Px:     p.Momentum.Px(), Py: p.Momentum.Py(), Pz: p.Momentum.Pz(), E: p.Momentum.E(),
		}
		all = append(all, gp)
		switch {
		case p.Status == 1:
			stable = append(stable, gp)
		case isPartonPID(gp.PID) && p.Status != 1:
			partons = append(partons, gp)
		}
	}
	return &Event{
		AllParticles: all, StableParticles: stable, Partons: partons,
		Header: Header{Number: int64(ev.EventNumber), Weight: weightOf(ev)},
	}, nil, true
}

func sortedParticles(particles map[int]*hepmc.Particle) []*hepmc.Particle {
	barcodes := make([]int, 0, len(particles))
	for bc := range particles {
		barcodes = append(barcodes, bc)
	}
	sort.Ints(barcodes)
	out := make([]*hepmc.Particle, 0, len(barcodes))
	for _, bc := range barcodes {
		out = append(out, particles[bc])
	}
	return out
}

func weightOf(ev hepmc.Event) float64 {
	if len(ev.Weights.Slice) > 0 {
		return ev.Weights.Slice[0]
	}
	return 1
}
