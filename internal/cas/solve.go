package cas

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/njchilds90/gosymbol"
)

const (
	nameEmpty   = "EmptySet"
	nameComplex = "Complexes"
)

// SolutionSet is the result of Solve: finitely many solutions, no
// solution, or every complex number.
type SolutionSet struct {
	elems []*Term
	all   bool
}

// Elems returns the solutions in ascending order.
func (s *SolutionSet) Elems() []*Term { return append([]*Term(nil), s.elems...) }

func (s *SolutionSet) String() string {
	switch {
	case s.all:
		return nameComplex
	case len(s.elems) == 0:
		return nameEmpty
	}
	parts := make([]string, len(s.elems))
	for i, e := range s.elems {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Solve returns the solution set of lhs = rhs for x over the complex
// numbers. Denominators containing x are cleared first and their roots
// excluded from the result; the remaining polynomial is solved by
// gosymbol up to degree two and by factoring above that.
func Solve(lhs, rhs *Term, x string) (*SolutionSet, error) {
	mode := lhs.mode
	if rhs.mode > mode {
		mode = rhs.mode
	}
	fail := func(reason string) error {
		return &SolveError{Equation: lhs.String() + " = " + rhs.String(), Variable: x, Reason: reason}
	}
	residual := expandNode(gosymbol.AddOf(lhs.node, gosymbol.MulOf(gosymbol.N(-1), rhs.node)))
	if containsInfinity(residual) {
		return nil, fail("equation is not finite")
	}

	num, dens := clearDenominators(residual, x)
	coeffs, deg, ok := polynomial(num, x)
	if !ok {
		return nil, fail("no closed-form solution")
	}
	if deg == 0 {
		c := coeffs[0]
		if n, ok := c.(*gosymbol.Num); ok {
			if n.IsZero() {
				return &SolutionSet{all: true}, nil
			}
			return &SolutionSet{}, nil
		}
		return nil, fail("solution depends on the value of " + strings.Join(sortedNames(symbolsOf(c)), ", "))
	}

	var roots []gosymbol.Expr
	if deg <= 2 {
		roots = lowDegreeRoots(coeffs, deg)
	} else {
		res := gosymbol.Factor(num, x)
		if !res.Success {
			return nil, fail("no closed-form solution for a polynomial of degree " + strconv.Itoa(deg))
		}
		for _, f := range res.Factors {
			if pw, ok := f.(*gosymbol.Pow); ok {
				f = pw.Base()
			}
			if !dependsOn(f, x) {
				continue
			}
			fc, fdeg, ok := polynomial(gosymbol.Expand(f), x)
			if !ok || fdeg > 2 {
				return nil, fail("no closed-form solution for a polynomial of degree " + strconv.Itoa(deg))
			}
			roots = append(roots, lowDegreeRoots(fc, fdeg)...)
		}
	}

	seen := map[string]bool{}
	var kept []*Term
	for _, r := range roots {
		r = expandNode(r)
		if zeroesAny(dens, x, r) {
			continue
		}
		t := newTerm(r, mode)
		if key := t.String(); !seen[key] {
			seen[key] = true
			kept = append(kept, t)
		}
	}
	sortSolutions(kept)
	return &SolutionSet{elems: kept}, nil
}

// clearDenominators multiplies every term of e by the powers of
// x-dependent bases that appear with negative integer exponents, and
// returns those bases.
func clearDenominators(e gosymbol.Expr, x string) (gosymbol.Expr, []gosymbol.Expr) {
	terms := []gosymbol.Expr{e}
	if s, ok := e.(*gosymbol.Add); ok {
		terms = s.Terms()
	}
	order := []string{}
	bases := map[string]gosymbol.Expr{}
	powers := map[string]int64{}
	note := func(f gosymbol.Expr) {
		pw, ok := f.(*gosymbol.Pow)
		if !ok || !dependsOn(pw.Base(), x) {
			return
		}
		n, ok := pw.ExpExpr().(*gosymbol.Num)
		if !ok || !n.IsInteger() || !n.IsNegative() || !n.Rat().Num().IsInt64() {
			return
		}
		key := pw.Base().String()
		if _, seen := bases[key]; !seen {
			order = append(order, key)
			bases[key] = pw.Base()
		}
		if k := -n.Rat().Num().Int64(); k > powers[key] {
			powers[key] = k
		}
	}
	for _, t := range terms {
		if m, ok := t.(*gosymbol.Mul); ok {
			for _, f := range m.Factors() {
				note(f)
			}
			continue
		}
		note(t)
	}
	if len(order) == 0 {
		return e, nil
	}
	multiplier := make([]gosymbol.Expr, 0, len(order))
	dens := make([]gosymbol.Expr, 0, len(order))
	for _, key := range order {
		multiplier = append(multiplier, gosymbol.PowOf(bases[key], gosymbol.N(powers[key])))
		dens = append(dens, bases[key])
	}
	cleared := make([]gosymbol.Expr, len(terms))
	for i, t := range terms {
		cleared[i] = gosymbol.Expand(gosymbol.MulOf(append([]gosymbol.Expr{t}, multiplier...)...))
	}
	return expandNode(gosymbol.AddOf(cleared...)), dens
}

// polynomial returns the coefficients of e as a polynomial in x and its
// degree. It fails when x appears other than in non-negative integer
// powers.
func polynomial(e gosymbol.Expr, x string) (gosymbol.PolyCoeffsResult, int, bool) {
	coeffs := gosymbol.PolyCoeffs(e, x)
	deg := 0
	for d, c := range coeffs {
		if dependsOn(c, x) || d < 0 {
			return nil, 0, false
		}
		if n, ok := c.(*gosymbol.Num); ok && n.IsZero() {
			continue
		}
		if d > deg {
			deg = d
		}
	}
	if _, ok := coeffs[0]; !ok {
		coeffs[0] = gosymbol.N(0)
	}
	// PolyCoeffs skips terms it cannot place, such as sin(x).
	parts := []gosymbol.Expr{gosymbol.MulOf(gosymbol.N(-1), e)}
	for d, c := range coeffs {
		parts = append(parts, gosymbol.MulOf(c, gosymbol.PowOf(gosymbol.S(x), gosymbol.N(int64(d)))))
	}
	if rest, ok := expandNode(gosymbol.AddOf(parts...)).(*gosymbol.Num); !ok || !rest.IsZero() {
		return nil, 0, false
	}
	return coeffs, deg, true
}

func coeffAt(coeffs gosymbol.PolyCoeffsResult, d int) gosymbol.Expr {
	if c, ok := coeffs[d]; ok {
		return c
	}
	return gosymbol.N(0)
}

// lowDegreeRoots solves a linear or quadratic polynomial. gosymbol's
// exact solvers are used where they return exact values; irrational and
// complex roots use the quadratic formula with simplified radicals.
func lowDegreeRoots(coeffs gosymbol.PolyCoeffsResult, deg int) []gosymbol.Expr {
	c0, c1 := coeffAt(coeffs, 0), coeffAt(coeffs, 1)
	if deg == 1 {
		return gosymbol.SolveLinear(c1, c0).Solutions
	}
	c2 := coeffAt(coeffs, 2)
	_, n2 := c2.(*gosymbol.Num)
	_, n1 := c1.(*gosymbol.Num)
	_, n0 := c0.(*gosymbol.Num)
	if n2 && n1 && n0 {
		if res := gosymbol.SolveQuadraticExact(c2, c1, c0); res.Error == "" && res.ExactForm {
			return res.Solutions
		}
	}
	disc := gosymbol.Expand(gosymbol.AddOf(gosymbol.PowOf(c1, gosymbol.N(2)), gosymbol.MulOf(gosymbol.N(-4), c2, c0)))
	var sq gosymbol.Expr
	if d, ok := disc.(*gosymbol.Num); ok {
		sq = radical(d, gosymbol.F(1, 2))
	} else {
		sq = gosymbol.PowOf(disc, gosymbol.F(1, 2))
	}
	inv := gosymbol.PowOf(gosymbol.MulOf(gosymbol.N(2), c2), gosymbol.N(-1))
	minusB := gosymbol.MulOf(gosymbol.N(-1), c1)
	return []gosymbol.Expr{
		gosymbol.Expand(gosymbol.MulOf(gosymbol.AddOf(minusB, gosymbol.MulOf(gosymbol.N(-1), sq)), inv)),
		gosymbol.Expand(gosymbol.MulOf(gosymbol.AddOf(minusB, sq), inv)),
	}
}

func zeroesAny(dens []gosymbol.Expr, x string, root gosymbol.Expr) bool {
	for _, d := range dens {
		v := expandNode(gosymbol.Sub(d, x, root))
		if n, ok := v.(*gosymbol.Num); ok && n.IsZero() {
			return true
		}
	}
	return false
}

// sortSolutions orders numeric solutions by real then imaginary part,
// followed by symbolic ones in string order.
func sortSolutions(ts []*Term) {
	type keyed struct {
		t       *Term
		v       complex128
		numeric bool
	}
	ks := make([]keyed, len(ts))
	for i, t := range ts {
		v, ok := evalComplex(t.node, nil)
		ks[i] = keyed{t: t, v: v, numeric: ok && len(symbolsOf(t.node)) == 0}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		a, b := ks[i], ks[j]
		if a.numeric != b.numeric {
			return a.numeric
		}
		if !a.numeric {
			return a.t.String() < b.t.String()
		}
		if real(a.v) != real(b.v) && math.Abs(real(a.v)-real(b.v)) > 1e-12 {
			return real(a.v) < real(b.v)
		}
		return imag(a.v) < imag(b.v)
	})
	for i := range ks {
		ts[i] = ks[i].t
	}
}

func sortedNames(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
