// Package fourvec provides ΔR/ΔEta/ΔPhi helpers used wherever the original
// implementation reaches for TLorentzVector::DeltaR/DeltaPhi. Kinematics
// themselves live on candidate.FourVector (stdlib math only, not
// go-hep.org/x/hep/fmom — see DESIGN.md's fourvec entry); this package
// supplies only the pairwise angular-distance arithmetic Candidate.Pt/Eta/Phi
// don't already provide.
package fourvec

import "math"

// DeltaPhi returns the wraparound-corrected angular distance in [-π, π].
func DeltaPhi(phi1, phi2 float64) float64 {
	d := phi1 - phi2
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	for d < -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// DeltaEta returns eta1 - eta2.
func DeltaEta(eta1, eta2 float64) float64 {
	return eta1 - eta2
}

// DeltaR returns the standard η-φ cone distance between two directions.
func DeltaR(eta1, phi1, eta2, phi2 float64) float64 {
	deta := DeltaEta(eta1, eta2)
	dphi := DeltaPhi(phi1, phi2)
	return math.Hypot(deta, dphi)
}
