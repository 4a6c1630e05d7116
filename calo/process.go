package calo

import (
	"math"
	"sort"

	"github.com/hepsim/colreco/candidate"
	"github.com/hepsim/colreco/formula"
	"github.com/hepsim/colreco/modpipe"
)

const (
	flagTrack   = uint64(1)
	flagEMCand  = uint64(2)
	sentinelT   = 999999.0
)

type hit struct {
	key     uint64 // (etaBin<<48)|(phiBin<<32)|(flags<<24)|index
	etaBin  int
	phiBin  int
	isTrack bool
	isEM    bool
	index   int
}

// Process implements the per-event algorithm of spec §4.3 steps 1-5.
func (m *Module) Process(ctx *modpipe.Context) error {
	tracks := m.tracks.Candidates()
	particles := m.particles.Candidates()

	hits := make([]hit, 0, len(tracks)+len(particles))
	for i, t := range tracks {
		etaBin, phiBin, ok := m.findBin(t.Eta(), t.Phi())
		if !ok {
			continue
		}
		hits = append(hits, hit{
			key:     packKey(etaBin, phiBin, flagTrack, i),
			etaBin:  etaBin, phiBin: phiBin, isTrack: true, index: i,
		})
	}
	for i, p := range particles {
		etaBin, phiBin, ok := m.findBin(p.Eta(), p.Phi())
		if !ok {
			continue
		}
		isEM := p.PID == 22 || abs32(p.PID) == 11
		var flags uint64
		if isEM {
			flags = flagEMCand
		}
		hits = append(hits, hit{
			key:     packKey(etaBin, phiBin, flags, i),
			etaBin:  etaBin, phiBin: phiBin, isEM: isEM, index: i,
		})
	}

	sort.Slice(hits, func(a, b int) bool { return hits[a].key < hits[b].key })

	m.towers.Reset()
	m.photons.Reset()
	m.eflowTracks.Reset()
	m.eflowTowers.Reset()

	var acc *towerAccumulator
	for _, h := range hits {
		if acc == nil || acc.etaBin != h.etaBin || acc.phiBin != h.phiBin {
			if acc != nil {
				m.finalizeTower(ctx, acc)
			}
			acc = newTowerAccumulator(h.etaBin, h.phiBin, m.etaEdges, m.phiEdges[h.etaBin])
		}
		if h.isTrack {
			t := tracks[h.index]
			fr := m.fraction(t.PID)
			acc.trackECal += t.Momentum.E * fr.ecal
			acc.trackHCal += t.Momentum.E * fr.hcal
			acc.tracks = append(acc.tracks, t)
		} else {
			p := particles[h.index]
			fr := m.fraction(p.PID)
			ecalE := p.Momentum.E * fr.ecal
			hcalE := p.Momentum.E * fr.hcal
			acc.ecalSum += ecalE
			acc.hcalSum += hcalE
			if h.isEM {
				acc.hasEMHit = true
			}
			if ecalE > m.timingEMin {
				acc.timeEnergy = append(acc.timeEnergy, candidate.TimedEnergy{E: ecalE, T: p.Position.E})
			}
			acc.constituents = append(acc.constituents, p)
		}
	}
	if acc != nil {
		m.finalizeTower(ctx, acc)
	}
	return nil
}

type towerAccumulator struct {
	etaBin, phiBin       int
	etaCenter, phiCenter float64
	edges                [4]float64

	ecalSum, hcalSum   float64
	trackECal, trackHCal float64
	hasEMHit           bool
	tracks             []*candidate.Candidate
	constituents       []*candidate.Candidate
	timeEnergy         []candidate.TimedEnergy
}

func newTowerAccumulator(etaBin, phiBin int, etaEdges []float64, phiEdges []float64) *towerAccumulator {
	return &towerAccumulator{
		etaBin: etaBin, phiBin: phiBin,
		etaCenter: binCenter(etaEdges, etaBin),
		phiCenter: binCenter(phiEdges, phiBin),
		edges: [4]float64{etaEdges[etaBin], etaEdges[etaBin+1], phiEdges[phiBin], phiEdges[phiBin+1]},
	}
}

// finalizeTower implements spec §4.3 step 5.
func (m *Module) finalizeTower(ctx *modpipe.Context, acc *towerAccumulator) {
	ecalSigma := m.safeEval(ctx, m.ecalRes, acc.etaCenter, acc.ecalSum)
	hcalSigma := m.safeEval(ctx, m.hcalRes, acc.etaCenter, acc.hcalSum)

	ecalSmeared := ctx.RNG.LogNormal(acc.ecalSum, ecalSigma)
	hcalSmeared := ctx.RNG.LogNormal(acc.hcalSum, hcalSigma)

	e := ecalSmeared + hcalSmeared
	pt := e / math.Cosh(acc.etaCenter)

	t := sentinelT
	if len(acc.timeEnergy) > 0 {
		var sumWT, sumW float64
		for _, te := range acc.timeEnergy {
			w := math.Sqrt(math.Max(te.E, 0))
			sumW += w
			sumWT += w * te.T
		}
		if sumW > 0 {
			t = sumWT / sumW
		}
	}

	tower := ctx.Pool.NewCandidate()
	tower.Momentum = candidate.FourVector{
		Px: pt * math.Cos(acc.phiCenter),
		Py: pt * math.Sin(acc.phiCenter),
		Pz: pt * math.Sinh(acc.etaCenter),
		E:  e,
	}
	tower.Position.E = t
	tower.Eem = ecalSmeared
	tower.Ehad = hcalSmeared
	tower.Edges = acc.edges
	tower.NTimes = len(acc.timeEnergy)
	tower.ECalEt = acc.timeEnergy
	for _, c := range acc.constituents {
		tower.AddCandidate(c)
	}
	m.towers.Append(tower)

	if acc.hasEMHit && len(acc.tracks) == 0 {
		m.photons.Append(tower)
	}

	for _, trk := range acc.tracks {
		m.eflowTracks.Append(trk)
	}

	ecalResid := math.Max(0, ecalSmeared-acc.trackECal)
	hcalResid := math.Max(0, hcalSmeared-acc.trackHCal)
	if ecalResid+hcalResid > 0 {
		residE := ecalResid + hcalResid
		residPt := residE / math.Cosh(acc.etaCenter)
		eflow := tower.Clone()
		eflow.Momentum = candidate.FourVector{
			Px: residPt * math.Cos(acc.phiCenter),
			Py: residPt * math.Sin(acc.phiCenter),
			Pz: residPt * math.Sinh(acc.etaCenter),
			E:  residE,
		}
		eflow.Eem = ecalResid
		eflow.Ehad = hcalResid
		m.eflowTowers.Append(eflow)
	}
}

func (m *Module) safeEval(ctx *modpipe.Context, f *formula.Formula, eta, energy float64) float64 {
	v, err := f.Eval(formula.Vars{Eta: eta, Energy: energy})
	if err != nil {
		ctx.Logger.Warn("resolution formula evaluation failed, substituting 0", "error", err)
		return 0
	}
	return v
}

func packKey(etaBin, phiBin int, flags uint64, index int) uint64 {
	return (uint64(etaBin) << 48) | (uint64(phiBin) << 32) | (flags << 24) | uint64(index)
}

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}
