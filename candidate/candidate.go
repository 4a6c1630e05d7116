// Package candidate implements the universal per-event particle/tower/jet
// record and the per-event pool that owns every instance of it.
package candidate

import "math"

// FourVector is a minimal Lorentz four-vector (px, py, pz, E) with the
// derived kinematic accessors Candidate.Momentum/Position/Area need.
type FourVector struct {
	Px, Py, Pz, E float64
}

func (v FourVector) Pt() float64 {
	return math.Hypot(v.Px, v.Py)
}

func (v FourVector) P() float64 {
	return math.Sqrt(v.Px*v.Px + v.Py*v.Py + v.Pz*v.Pz)
}

func (v FourVector) Eta() float64 {
	p := v.P()
	if p == math.Abs(v.Pz) {
		if v.Pz == 0 {
			return 0
		}
		return math.Copysign(1e10, v.Pz)
	}
	return 0.5 * math.Log((p+v.Pz)/(p-v.Pz))
}

func (v FourVector) Phi() float64 {
	return math.Atan2(v.Py, v.Px)
}

func (v FourVector) M() float64 {
	m2 := v.E*v.E - v.Px*v.Px - v.Py*v.Py - v.Pz*v.Pz
	if m2 < 0 {
		return -math.Sqrt(-m2)
	}
	return math.Sqrt(m2)
}

func (v FourVector) Rapidity() float64 {
	if v.E == math.Abs(v.Pz) {
		return math.Copysign(1e10, v.Pz)
	}
	return 0.5 * math.Log((v.E+v.Pz)/(v.E-v.Pz))
}

func (v FourVector) Add(o FourVector) FourVector {
	return FourVector{v.Px + o.Px, v.Py + o.Py, v.Pz + o.Pz, v.E + o.E}
}

// TimedEnergy is one entry of a tower's time-energy list: an ECAL deposit
// above the timing threshold paired with the contributing particle's T.
type TimedEnergy struct {
	E, T float64
}

// FlavourSet holds the seven alternative flavour-variant PIDs a jet carries, keyed by variant name in the order spec §3 lists them.
type FlavourSet struct {
	Algo, Default, Physics, Nearest2, Nearest3, Heaviest, HighestPt int32
}

// BTagSet holds the bitmask for each of the seven flavour variants.
type BTagSet struct {
	Algo, Default, Physics, Nearest2, Nearest3, Heaviest, HighestPt uint32
}

// Candidate is the universal per-event object: particle, track, tower, jet,
// or header scalar (Rho, MissingET, ScalarHT), depending on which fields a
// producing module populates.
type Candidate struct {
	pool *Pool

	Momentum FourVector
	Position FourVector
	Area     FourVector

	PID, Status      int32
	M1, M2, D1, D2    int32
	Charge            int32
	Spin              int32
	Mass              float64

	IsPU, IsRecoPU, IsConstituent, IsEMCand, IsFakeObject bool

	IsolationVarDBeta    float64
	IsolationVarRhoCorr  float64
	TrackIsolationVar    float64
	ChargedHadronEnergy  float64
	NeutralEnergy        float64
	ChargedPUEnergy      float64
	AllParticleEnergy    float64

	Eem, Ehad float64

	Flavour FlavourSet
	BTag    BTagSet
	TauTag  bool

	Tau1, Tau2, Tau3 float64

	TrimmedMass float64
	TrimmedPt   float64
	TrimmedSubjets [3]FourVector
	NSubJetsTrimmed int

	PrunedMass float64
	PrunedPt   float64
	PrunedSubjets [3]FourVector
	NSubJetsPruned int

	SoftDroppedMass float64
	SoftDroppedPt   float64
	SoftDroppedSubjets [3]FourVector
	NSubJetsSoftDropped int

	WTag, TopTag, HTag bool

	DRMean, PtD, SumPt, BetaClassic, Axis2, LeadFrac float64
	NTimes int

	Edges [4]float64
	DeltaEta, DeltaPhi float64

	ECalEt []TimedEnergy

	composition []*Candidate
}

// Pool is the per-event arena owning every Candidate created during the
// processing of one event. It is cleared between events; no Candidate
// survives across that boundary.
type Pool struct {
	arena []*Candidate
}

// NewPool allocates an empty per-event pool.
func NewPool() *Pool {
	return &Pool{arena: make([]*Candidate, 0, 256)}
}

// NewCandidate produces a fresh, zero-initialised Candidate bound to this
// pool. Never fails.
func (p *Pool) NewCandidate() *Candidate {
	c := &Candidate{pool: p}
	p.arena = append(p.arena, c)
	return c
}

// Clear resets the pool to empty. Idempotent: calling it on an already-empty
// pool is a no-op.
func (p *Pool) Clear() {
	p.arena = p.arena[:0]
}

// Len reports how many Candidates are currently live in the pool.
func (p *Pool) Len() int {
	return len(p.arena)
}

// AddCandidate appends child to c's composition. The child keeps the pool
// back-pointer it was given by NewCandidate; AddCandidate does not change it.
// No uniqueness is enforced — the same child may be added twice, matching
// spec §4.1.
func (c *Candidate) AddCandidate(child *Candidate) {
	c.composition = append(c.composition, child)
}

// Composition returns the ordered slice of children accumulated via
// AddCandidate. Callers must not mutate the returned slice.
func (c *Candidate) Composition() []*Candidate {
	return c.composition
}

// Clone returns a shallow copy of c's attributes bound to the same pool, with
// a fresh, empty composition.
func (c *Candidate) Clone() *Candidate {
	clone := c.pool.NewCandidate()
	pool := clone.pool
	*clone = *c
	clone.pool = pool
	clone.composition = nil
	return clone
}

// Overlaps reports whether c and other share a composition relationship:
// either appears in the other's composition, or the two compositions share
// an entry (used for lepton/jet cross-cleaning).
func (c *Candidate) Overlaps(other *Candidate) bool {
	if c == other {
		return true
	}
	for _, child := range c.composition {
		if child == other {
			return true
		}
	}
	for _, child := range other.composition {
		if child == c {
			return true
		}
	}
	for _, a := range c.composition {
		for _, b := range other.composition {
			if a == b {
				return true
			}
		}
	}
	return false
}

// Clear resets c's attributes to their zero value. Used only by pool
// recycling; never called on a Candidate still referenced by live arrays.
func (c *Candidate) Clear() {
	pool := c.pool
	*c = Candidate{pool: pool}
}

// Pt, Eta, Phi, Rapidity are convenience accessors mirroring the
// four-momentum derived kinematics spec §3(d) requires to stay consistent
// with Momentum.
func (c *Candidate) Pt() float64       { return c.Momentum.Pt() }
func (c *Candidate) Eta() float64      { return c.Momentum.Eta() }
func (c *Candidate) Phi() float64      { return c.Momentum.Phi() }
func (c *Candidate) Rapidity() float64 { return c.Momentum.Rapidity() }
