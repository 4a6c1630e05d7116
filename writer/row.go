package writer

import "github.com/hepsim/colreco/candidate"

// candidateRow is the flattened column set written for every exported
// array, covering the kinematic and tagging fields common to particles,
// tracks, towers, and jets. Booleans are stored as int32 since the HDF5
// binding mirrors plain C structs, the same convention the teacher's
// EventDataHDF5/RunInfoHDF5 row types use for every field.
type candidateRow struct {
	Px, Py, Pz, E float64
	Eta, Phi      float64

	PID, Status int32
	Charge      int32

	IsPU int32

	Eem, Ehad float64

	FlavourAlgo    int32
	FlavourDefault int32
	FlavourPhysics int32

	BTagAlgo    uint32
	BTagDefault uint32
	BTagPhysics uint32

	TauTag int32

	TrimmedMass     float64
	PrunedMass      float64
	SoftDroppedMass float64
	Tau1, Tau2, Tau3 float64

	WTag, TopTag, HTag int32
}

func boolToI32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func toRow(c *candidate.Candidate) candidateRow {
	return candidateRow{
		Px: c.Momentum.Px, Py: c.Momentum.Py, Pz: c.Momentum.Pz, E: c.Momentum.E,
		Eta: c.Eta(), Phi: c.Phi(),
		PID: c.PID, Status: c.Status, Charge: c.Charge,
		IsPU: boolToI32(c.IsPU),
		Eem:  c.Eem, Ehad: c.Ehad,

		FlavourAlgo:    c.Flavour.Algo,
		FlavourDefault: c.Flavour.Default,
		FlavourPhysics: c.Flavour.Physics,

		BTagAlgo:    c.BTag.Algo,
		BTagDefault: c.BTag.Default,
		BTagPhysics: c.BTag.Physics,

		TauTag: boolToI32(c.TauTag),

		TrimmedMass:     c.TrimmedMass,
		PrunedMass:      c.PrunedMass,
		SoftDroppedMass: c.SoftDroppedMass,
		Tau1:            c.Tau1,
		Tau2:            c.Tau2,
		Tau3:            c.Tau3,

		WTag:   boolToI32(c.WTag),
		TopTag: boolToI32(c.TopTag),
		HTag:   boolToI32(c.HTag),
	}
}
