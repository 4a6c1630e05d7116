// Package genreader provides the generator-event reader interface the
// framework is handed at startup (spec §6 "the framework is handed three
// pre-populated arrays"), plus concrete LHE and HepMC adapters grounded on
// go-hep.org/x/hep/lhef and go-hep.org/x/hep/hepmc. The reader-loop idiom
// (Open/Next/Event) follows other_examples/go-lpc-mim's lcio.Open/r.Next()
// usage, and the pre/post-skip framing follows the teacher's
// fileReader.go/dateReader.go FileReader.getNextEvent pattern.
package genreader

import "github.com/hepsim/colreco/candidate"

// GenParticle is one generator-level particle as read off the input file,
// before the framework wraps it into a Candidate.
type GenParticle struct {
	PID, Status     int32
	M1, M2, D1, D2  int32
	Charge          int32
	Mass            float64
	Px, Py, Pz, E   float64
	T, X, Y, Z      float64
	IsPU            bool
}

// Event is the framework's input: the three pre-populated arrays spec §6
// names, plus the optional LHE-level partons and whichever event-header
// record the concrete reader attaches.
type Event struct {
	AllParticles    []GenParticle
	StableParticles []GenParticle
	Partons         []GenParticle
	LHEParticles    []GenParticle
	Header          Header
}

// Header captures the event-level scalars spec §3 lists (Event, LHEFEvent,
// HepMCEvent variants): number, weights, PDFs, scales. They never
// participate in the module graph. Module exposes the latest one as
// Module.Header; it is not a named array, and the run command does not
// write it to the output file.
type Header struct {
	Number      int64
	Weight      float64
	ScalePDF    float64
	AlphaQCD    float64
	AlphaQED    float64
}

// Reader is the capability interface a concrete generator/event-file reader
// implements; any equivalent implementation may be substituted per spec
// §9's design note on the external clustering library, applied here to the
// input side as well.
type Reader interface {
	// Next decodes the next event. Returns false when the input is
	// exhausted; a non-nil error on a malformed record is an ExternalError
	// the caller should treat as "skip this event".
	Next() (*Event, error, bool)
	Close() error
}

// ToAllParticles converts raw generator particles into Candidates owned by
// pool, preserving index order so M1/M2/D1/D2 stay valid indices into the
// returned slice (spec §3 invariant (c)).
func ToAllParticles(pool *candidate.Pool, particles []GenParticle) []*candidate.Candidate {
	out := make([]*candidate.Candidate, len(particles))
	for i, p := range particles {
		c := pool.NewCandidate()
		c.PID, c.Status = p.PID, p.Status
		c.M1, c.M2, c.D1, c.D2 = p.M1, p.M2, p.D1, p.D2
		c.Charge, c.Mass = p.Charge, p.Mass
		c.Momentum = candidate.FourVector{Px: p.Px, Py: p.Py, Pz: p.Pz, E: p.E}
		c.Position = candidate.FourVector{Px: p.X, Py: p.Y, Pz: p.Z, E: p.T}
		c.IsPU = p.IsPU
		out[i] = c
	}
	return out
}
