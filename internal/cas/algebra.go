package cas

import (
	"math"
	"math/big"
	"sort"

	"github.com/njchilds90/gosymbol"
)

func expandNode(e gosymbol.Expr) gosymbol.Expr {
	return tidy(gosymbol.Expand(e))
}

// Expand multiplies out products and integer powers of sums.
func Expand(e *Term) *Term { return e.derive(expandNode(e.node)) }

// Factor writes a polynomial as a product over the rationals.
func Factor(e *Term) *Term { return e.derive(factorNode(e.node)) }

// Simplify returns the shortest of several equivalent forms of e.
func Simplify(e *Term) *Term { return e.derive(simplifyNode(e.node)) }

// mainVariable picks the variable to factor in: the first in
// lexicographic order.
func mainVariable(e gosymbol.Expr) (string, bool) {
	syms := symbolsOf(e)
	if len(syms) == 0 {
		return "", false
	}
	names := make([]string, 0, len(syms))
	for name := range syms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names[0], true
}

func factorNode(e gosymbol.Expr) gosymbol.Expr {
	x, ok := mainVariable(e)
	if !ok {
		return e
	}
	res := gosymbol.Factor(e, x)
	if !res.Success {
		return contentFactor(e, x)
	}
	return tidy(gosymbol.MulOf(res.Factors...))
}

// contentFactor pulls the integer content out of a linear polynomial:
// 2*x + 2 becomes 2*(x + 1).
func contentFactor(e gosymbol.Expr, x string) gosymbol.Expr {
	sum, ok := e.(*gosymbol.Add)
	if !ok {
		return e
	}
	g := new(big.Int)
	for _, c := range gosymbol.PolyCoeffs(sum, x) {
		n, ok := c.(*gosymbol.Num)
		if !ok || !n.IsInteger() {
			return e
		}
		g.GCD(nil, nil, g, new(big.Int).Abs(n.Rat().Num()))
	}
	if g.Cmp(big.NewInt(1)) <= 0 {
		return e
	}
	content := numFromInt(g)
	inner := gosymbol.Expand(gosymbol.MulOf(gosymbol.PowOf(content, gosymbol.N(-1)), sum))
	return gosymbol.MulOf(content, inner)
}

func simplifyNode(e gosymbol.Expr) gosymbol.Expr {
	best := tidy(gosymbol.DeepSimplify(e))
	bestLen := len(format(best, exact))
	consider := func(c gosymbol.Expr) {
		c = tidy(c)
		if l := len(format(c, exact)); l < bestLen {
			best, bestLen = c, l
		}
	}
	if x, ok := mainVariable(e); ok {
		if res := gosymbol.Factor(e, x); res.Success {
			consider(gosymbol.MulOf(res.Factors...))
		}
	}
	consider(gosymbol.DeepSimplify(gosymbol.Expand(e)))
	return best
}

// equalityTolerance is the relative tolerance of numeric comparison.
const equalityTolerance = 1e-9

// samplePoints are the values substituted for free symbols when two
// expressions cannot be compared symbolically.
var samplePoints = []float64{0.7, 1.3, 2.1, 3.7}

// Equals reports whether a and b are mathematically equal: their
// difference expands to zero, or agrees with zero at several sample
// points.
func Equals(a, b *Term) (bool, error) {
	diff := expandNode(gosymbol.AddOf(a.node, gosymbol.MulOf(gosymbol.N(-1), b.node)))
	if n, ok := diff.(*gosymbol.Num); ok {
		// Floats carry rounding error; exact rationals compare exactly.
		if n.IsZero() || n.Rat().Denom().BitLen() <= floatDenominatorBits {
			return n.IsZero(), nil
		}
	}
	syms := symbolsOf(diff)
	names := make([]string, 0, len(syms))
	for name := range syms {
		names = append(names, name)
	}
	sort.Strings(names)

	for i := range samplePoints {
		env := map[string]float64{}
		for j, name := range names {
			env[name] = samplePoints[(i+j)%len(samplePoints)] + float64(j)*0.1
		}
		va, ok1 := evalComplex(a.node, env)
		vb, ok2 := evalComplex(b.node, env)
		if !ok1 || !ok2 {
			return false, &EvaluationError{Op: "equals", Expr: a.String() + " = " + b.String(), Reason: "cannot compare numerically"}
		}
		scale := math.Max(1, math.Max(absC(va), absC(vb)))
		if absC(va-vb) > equalityTolerance*scale {
			return false, nil
		}
	}
	return true, nil
}

func absC(v complex128) float64 { return math.Hypot(real(v), imag(v)) }
