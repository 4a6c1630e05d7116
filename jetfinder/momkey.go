package jetfinder

import "github.com/hepsim/colreco/candidate"

// momKey is a hashable quantization of a four-momentum, used to look an
// original input Candidate back up from a fastjet constituent pseudojet
// (leaves pass through clustering with their momentum components intact).
type momKey struct{ px, py, pz, e int64 }

const quantum = 1e6

func keyOf(v candidate.FourVector) momKey {
	return momKey{
		px: int64(v.Px * quantum),
		py: int64(v.Py * quantum),
		pz: int64(v.Pz * quantum),
		e:  int64(v.E * quantum),
	}
}
