package cas

import (
	"sort"
	"strings"

	"github.com/njchilds90/gosymbol"
)

// Binding strengths used to decide where parentheses go.
const (
	precAdd  = 10
	precMul  = 20
	precPow  = 30
	precAtom = 100
)

// floatDenominatorBits is the denominator size above which a rational is
// treated as a float that lost its decimal origin (sin(1), NFloat results).
const floatDenominatorBits = 32

// format renders e in the calculator's output syntax: ** for powers,
// sqrt, log and Abs names, oo for infinity and zoo for division by zero.
func format(e gosymbol.Expr, mode numberMode) string {
	p := printer{mode: mode}
	if n, ok := e.(*gosymbol.Num); ok && p.isFloat(n) {
		return formatSig(n.Float64())
	}
	s, _ := p.print(e)
	return s
}

type printer struct {
	mode numberMode
}

func (p printer) isFloat(n *gosymbol.Num) bool {
	if p.mode == floating {
		return true
	}
	if n.IsInteger() {
		return false
	}
	return p.mode == decimal || n.Rat().Denom().BitLen() > floatDenominatorBits
}

// wrap prints e, parenthesized when it binds looser than min.
func (p printer) wrap(e gosymbol.Expr, min int) string {
	s, prec := p.print(e)
	if prec < min {
		return "(" + s + ")"
	}
	return s
}

func (p printer) print(e gosymbol.Expr) (string, int) {
	switch v := e.(type) {
	case *gosymbol.Num:
		return p.number(v)
	case *gosymbol.Sym:
		return v.Name(), precAtom
	case *gosymbol.ConstantNode:
		switch v.String() {
		case "inf":
			return "oo", precAtom
		case "-inf":
			return "-oo", precAdd
		}
		return v.String(), precAtom
	case *gosymbol.Func:
		return funcName(v.FuncName()) + "(" + p.wrap(v.Arg(), 0) + ")", precAtom
	case *gosymbol.Pow:
		return p.power(v)
	case *gosymbol.Mul:
		return p.product(v.Factors())
	case *gosymbol.Add:
		return p.sum(v.Terms())
	}
	return e.String(), precAtom
}

func funcName(name string) string {
	switch name {
	case "ln":
		return "log"
	case "abs":
		return "Abs"
	}
	return name
}

func (p printer) number(n *gosymbol.Num) (string, int) {
	if p.isFloat(n) {
		s := trimFloat(formatSig(n.Float64()))
		if n.IsNegative() {
			return s, precAdd
		}
		return s, precAtom
	}
	s := n.String()
	switch {
	case n.IsNegative():
		return s, precAdd
	case !n.IsInteger():
		return s, precMul
	}
	return s, precAtom
}

// trimFloat shortens a fifteen-digit float for use inside a larger
// expression: 0.500000000000000 becomes 0.5 and 2.00000000000000 2.0.
func trimFloat(s string) string {
	if !strings.Contains(s, ".") || strings.ContainsAny(s, "e") {
		return s
	}
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}

func (p printer) power(v *gosymbol.Pow) (string, int) {
	base, exp := v.Base(), v.ExpExpr()
	n, numericExp := exp.(*gosymbol.Num)

	if b, ok := base.(*gosymbol.Num); ok && b.IsZero() && numericExp && n.IsNegative() {
		return "zoo", precAtom
	}
	if isSymbol(base, nameE) {
		return "exp(" + p.wrap(exp, 0) + ")", precAtom
	}
	if numericExp && !p.isFloat(n) {
		r := n.Rat()
		switch r.RatString() {
		case "1/2":
			return "sqrt(" + p.wrap(base, 0) + ")", precAtom
		case "-1/2":
			return "1/sqrt(" + p.wrap(base, 0) + ")", precMul
		case "-1":
			return "1/" + p.wrap(base, precPow), precMul
		}
	}

	b := p.wrap(base, precPow+1)
	var x string
	switch t := exp.(type) {
	case *gosymbol.Sym, *gosymbol.Func:
		x, _ = p.print(t)
	case *gosymbol.Num:
		s, prec := p.number(t)
		if prec < precAtom {
			s = "(" + s + ")"
		}
		x = s
	default:
		x = "(" + p.wrap(exp, 0) + ")"
	}
	return b + "**" + x, precPow
}

// product prints a Mul as num/den, moving negative powers and the
// denominator of a rational coefficient below the line.
func (p printer) product(factors []gosymbol.Expr) (string, int) {
	var coeff *gosymbol.Num
	var num, den []gosymbol.Expr
	for _, f := range factors {
		if n, ok := f.(*gosymbol.Num); ok && coeff == nil {
			coeff = n
			continue
		}
		if pw, ok := f.(*gosymbol.Pow); ok {
			if n, ok := pw.ExpExpr().(*gosymbol.Num); ok && n.IsNegative() && !isZeroNum(pw.Base()) {
				den = append(den, gosymbol.PowOf(pw.Base(), gosymbol.MulOf(gosymbol.N(-1), n)))
				continue
			}
		}
		num = append(num, f)
	}

	sign := ""
	var numParts, denParts []string
	if coeff != nil {
		if coeff.IsNegative() {
			sign = "-"
			coeff = gosymbol.MulOf(gosymbol.N(-1), coeff).(*gosymbol.Num)
		}
		switch {
		case p.isFloat(coeff):
			numParts = append(numParts, trimFloat(formatSig(coeff.Float64())))
		default:
			r := coeff.Rat()
			if !(r.Num().IsInt64() && r.Num().Int64() == 1) {
				numParts = append(numParts, r.Num().String())
			}
			if !r.IsInt() {
				denParts = append(denParts, r.Denom().String())
			}
		}
	}
	for _, f := range num {
		numParts = append(numParts, p.wrap(f, precMul))
	}
	for _, f := range den {
		denParts = append(denParts, p.wrap(f, precMul))
	}

	top := strings.Join(numParts, "*")
	if top == "" {
		top = "1"
	}
	if len(denParts) == 0 {
		if sign != "" {
			return sign + top, precAdd
		}
		return top, precMul
	}
	bottom := strings.Join(denParts, "*")
	if len(denParts) > 1 {
		bottom = "(" + bottom + ")"
	}
	if sign != "" {
		return sign + top + "/" + bottom, precAdd
	}
	return top + "/" + bottom, precMul
}

func isZeroNum(e gosymbol.Expr) bool {
	n, ok := e.(*gosymbol.Num)
	return ok && n.IsZero()
}

// sum orders terms by descending degree with constants last, the way
// polynomials are usually written.
func (p printer) sum(terms []gosymbol.Expr) (string, int) {
	ordered := append([]gosymbol.Expr(nil), terms...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return termDegree(ordered[i]) > termDegree(ordered[j])
	})
	var b strings.Builder
	for i, t := range ordered {
		s := p.wrap(t, precAdd)
		switch {
		case i == 0:
			b.WriteString(s)
		case strings.HasPrefix(s, "-"):
			b.WriteString(" - ")
			b.WriteString(s[1:])
		default:
			b.WriteString(" + ")
			b.WriteString(s)
		}
	}
	return b.String(), precAdd
}

// termDegree is the total degree of a term in its variables; numbers
// sort after everything else.
func termDegree(e gosymbol.Expr) float64 {
	switch v := e.(type) {
	case *gosymbol.Num:
		return -1
	case *gosymbol.Sym:
		if constantNames[v.Name()] {
			return 0
		}
		return 1
	case *gosymbol.Pow:
		if n, ok := v.ExpExpr().(*gosymbol.Num); ok {
			if _, ok := v.Base().(*gosymbol.Sym); ok {
				return termDegree(v.Base()) * n.Float64()
			}
		}
		return 0
	case *gosymbol.Mul:
		total := 0.0
		for _, f := range v.Factors() {
			if _, ok := f.(*gosymbol.Num); ok {
				continue
			}
			total += termDegree(f)
		}
		return total
	}
	return 0
}
