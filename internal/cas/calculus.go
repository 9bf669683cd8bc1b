package cas

import (
	"math"
	"math/big"

	"github.com/njchilds90/gosymbol"
)

func diffNode(e gosymbol.Expr, variable string) gosymbol.Expr {
	return tidy(gosymbol.Diff(e, variable))
}

// Diff differentiates e with respect to variable.
func Diff(e *Term, variable string) *Term {
	return e.derive(diffNode(e.node, variable))
}

// Integrate returns an antiderivative of e with respect to variable,
// without the constant of integration.
func Integrate(e *Term, variable string) (*Term, error) {
	n, err := integrateNode(e.node, variable)
	if err != nil {
		return nil, err
	}
	return e.derive(n), nil
}

// integrateNode tries gosymbol's rule table, then linearity, then the
// transcendental pass, then the expanded form, and finally rewrites
// sin*cos products as a double angle.
func integrateNode(e gosymbol.Expr, variable string) (gosymbol.Expr, error) {
	if v, ok := antiderivative(e, variable); ok {
		return tidy(v), nil
	}
	if ex := gosymbol.Expand(e); ex.String() != e.String() {
		if v, ok := antiderivative(ex, variable); ok {
			return tidy(v), nil
		}
	}
	doubled := gosymbol.MulOf(gosymbol.N(2), e)
	if ts := gosymbol.TrigSimplify(doubled); ts.String() != doubled.String() {
		if v, ok := antiderivative(ts, variable); ok {
			return tidy(gosymbol.MulOf(gosymbol.F(1, 2), v)), nil
		}
	}
	return nil, &EvaluationError{Op: "integrate", Expr: format(e, exact), Reason: "no closed form found"}
}

func antiderivative(e gosymbol.Expr, variable string) (gosymbol.Expr, bool) {
	if !dependsOn(e, variable) {
		return gosymbol.MulOf(e, gosymbol.S(variable)), true
	}
	if v, ok := gosymbol.Integrate(e, variable); ok {
		return v, true
	}
	switch x := e.(type) {
	case *gosymbol.Add:
		parts := make([]gosymbol.Expr, len(x.Terms()))
		for i, t := range x.Terms() {
			v, ok := antiderivative(t, variable)
			if !ok {
				return nil, false
			}
			parts[i] = v
		}
		return gosymbol.AddOf(parts...), true
	case *gosymbol.Mul:
		var constant, rest []gosymbol.Expr
		for _, f := range x.Factors() {
			if dependsOn(f, variable) {
				rest = append(rest, f)
			} else {
				constant = append(constant, f)
			}
		}
		if len(constant) > 0 && len(rest) > 0 {
			if v, ok := antiderivative(gosymbol.MulOf(rest...), variable); ok {
				return gosymbol.MulOf(append(constant, v)...), true
			}
		}
	}
	return gosymbol.PerformRischTranscendentalIntegration(e, variable)
}

// Doit evaluates a limit.
func (l *Limit) Doit() (*Term, error) {
	v, err := evalLimit(l)
	if err != nil {
		return nil, err
	}
	return l.expr.derive(v), nil
}

// rationalDenominatorCap bounds the denominators a float limit is
// snapped to.
const rationalDenominatorCap = 1000

func evalLimit(l *Limit) (gosymbol.Expr, error) {
	fail := func(reason string) error {
		return &EvaluationError{Op: "limit", Expr: l.String(), Reason: reason}
	}
	dir := l.dir
	if dir == "" {
		dir = "+"
	}
	res := gosymbol.LimitWithDirection(l.expr.node, l.variable, l.point.node, dir)
	if !res.Success || res.Value == nil {
		return nil, fail(res.Error)
	}
	v := tidy(res.Value)
	if n, ok := v.(*gosymbol.Num); ok {
		exactValue, ok := snapRational(n)
		if !ok {
			return nil, fail("limit is not exact")
		}
		v = exactValue
	}
	if !isInfinity(v) && len(symbolsOf(v)) == 0 && !dependsOn(v, nameI) && math.IsNaN(evalReal(v, nil)) {
		return nil, fail("limit is undefined")
	}
	if !limitAgrees(l, v, dir) {
		return nil, fail("limit does not agree with nearby values")
	}
	return v, nil
}

// snapRational replaces a float-derived number with the small-denominator
// rational it approximates.
func snapRational(n *gosymbol.Num) (*gosymbol.Num, bool) {
	r := n.Rat()
	if r.Denom().BitLen() <= floatDenominatorBits {
		return n, true
	}
	f := n.Float64()
	for q := int64(1); q <= rationalDenominatorCap; q++ {
		p := math.Round(f * float64(q))
		if math.Abs(p/float64(q)-f) < 1e-9 && math.Abs(p) < 1<<53 {
			return numFromRat(big.NewRat(int64(p), q)), true
		}
	}
	return nil, false
}

// limitAgrees checks a symbolic limit against samples approaching the
// point from the chosen side. Limits with parameters are not checked.
func limitAgrees(l *Limit, v gosymbol.Expr, dir string) bool {
	e := l.expr.node
	for name := range symbolsOf(e) {
		if name != l.variable {
			return true
		}
	}
	var xs []float64
	switch {
	case isInfinity(l.point.node):
		sign := 1.0
		if l.point.node.String() == "-inf" {
			sign = -1
		}
		xs = []float64{sign * 1e4, sign * 1e6}
	default:
		a := evalReal(l.point.node, nil)
		if math.IsNaN(a) {
			return true
		}
		step := 1.0
		if dir == "-" {
			step = -1
		}
		xs = []float64{a + step*1e-3, a + step*1e-4, a + step*1e-5}
	}

	var samples []float64
	for _, x := range xs {
		f := evalReal(e, map[string]float64{l.variable: x})
		if !math.IsNaN(f) {
			samples = append(samples, f)
		}
	}
	if len(samples) == 0 {
		return true
	}
	if isInfinity(v) {
		want := 1.0
		if v.String() == "-inf" {
			want = -1
		}
		last := samples[len(samples)-1]
		return math.Signbit(last) == math.Signbit(want) && math.Abs(last) > 10
	}
	target := evalReal(v, nil)
	if math.IsNaN(target) {
		return true
	}
	tol := 1e-2 * math.Max(1, math.Abs(target))
	for _, f := range samples {
		if math.Abs(f-target) <= tol {
			return true
		}
	}
	return false
}
