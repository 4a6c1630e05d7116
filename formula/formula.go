// Package formula implements a small, compiled expression evaluator over the
// four kinematic variables (pt, eta, phi, energy) used by resolution and
// efficiency formula strings throughout the pipeline (e.g.
// "0.02*sqrt(pt)/pt" for calorimeter resolution, or a flat constant for
// b-tagging efficiency). No expression-parser library appears anywhere in
// the retrieved example pack, so this is hand-written on the standard
// library's text/scanner-like tokenizing idiom rather than an ecosystem
// dependency.
package formula

import (
	"fmt"
	"math"
)

// Vars binds the four variables a formula may reference.
type Vars struct {
	Pt, Eta, Phi, Energy float64
}

// Formula is a compiled expression ready for repeated evaluation.
type Formula struct {
	src  string
	root node
}

// Compile parses expr into a Formula. A bare numeric literal (the common
// case for flat efficiency formulas) compiles to a constant node.
func Compile(expr string) (*Formula, error) {
	toks, err := tokenize(expr)
	if err != nil {
		return nil, fmt.Errorf("formula: tokenize %q: %w", expr, err)
	}
	p := &parser{toks: toks}
	root, err := p.parseExpr()
	if err != nil {
		return nil, fmt.Errorf("formula: parse %q: %w", expr, err)
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("formula: unexpected trailing input in %q", expr)
	}
	return &Formula{src: expr, root: root}, nil
}

// MustCompile is Compile but panics on error; intended for constants known
// at init time, not for user-supplied configuration.
func MustCompile(expr string) *Formula {
	f, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return f
}

// String returns the original formula source.
func (f *Formula) String() string { return f.src }

// Eval evaluates the formula against v. A malformed runtime value (NaN
// propagated from a domain error, e.g. log of a negative number) is the
// NumericError case spec §7 calls out; callers substitute 0 on that path.
func (f *Formula) Eval(v Vars) (float64, error) {
	result := f.root.eval(v)
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, fmt.Errorf("formula: non-finite result evaluating %q", f.src)
	}
	return result, nil
}
