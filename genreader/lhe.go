package genreader

import (
	"fmt"
	"os"

	"go-hep.org/x/hep/lhef"
)

// LHEReader adapts go-hep.org/x/hep/lhef to the Reader interface, standing
// in for "the Les Houches event reader" spec.md declares out of scope but
// stated-interface.
type LHEReader struct {
	f *os.File
	d *lhef.Decoder
}

// OpenLHE opens filename as a Les Houches event file.
func OpenLHE(filename string) (*LHEReader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("genreader: open %s: %w", filename, err)
	}
	d, err := lhef.NewDecoder(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("genreader: lhef reader %s: %w", filename, err)
	}
	return &LHEReader{f: f, d: d}, nil
}

func (lr *LHEReader) Close() error { return lr.f.Close() }

// Next decodes the next LHE event and classifies its particles into
// allParticles/stableParticles/partons/LHEParticles per spec §6. Any decode
// error, a malformed record included, ends the input: Next then reports
// false with a nil error. Daughter indices are not read and stay -1.
func (lr *LHEReader) Next() (*Event, error, bool) {
	ev, err := lr.d.Decode()
	if err != nil {
		return nil, nil, false
	}
	all := make([]GenParticle, 0, len(ev.IDUP))
	var stable, partons, lheLevel []GenParticle
	for i := range ev.IDUP {
		pid := int32(ev.IDUP[i])
		status := ev.ISTUP[i]
		mom := ev.PUP[i]
		gp := GenParticle{
			PID:    pid,
			Status: status,
			M1:     ev.MOTHUP[i][0] - 1,
			M2:     ev.MOTHUP[i][1] - 1,
			D1:     -1,
			D2:     -1,
			Charge: int32(0),
			Px:     mom[0], Py: mom[1], Pz: mom[2], E: mom[3],
			Mass: mom[4],
		}
		all = append(all, gp)
		switch {
		case status == 1:
			stable = append(stable, gp)
			lheLevel = append(lheLevel, gp)
		case isPartonPID(pid) && status <= 0:
			partons = append(partons, gp)
		}
	}
	return &Event{
		AllParticles: all, StableParticles: stable, Partons: partons, LHEParticles: lheLevel,
		Header: Header{Number: int64(ev.NUP), Weight: ev.XWGTUP},
	}, nil, true
}

func isPartonPID(pid int32) bool {
	a := pid
	if a < 0 {
		a = -a
	}
	return (a >= 1 && a <= 5) || a == 21
}
