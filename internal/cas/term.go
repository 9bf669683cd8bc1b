package cas

import (
	"sort"
	"strings"

	"github.com/njchilds90/gosymbol"

	"mathshell/pkg/mathtypes"
)

// Names of the symbols that stand for constants rather than variables.
const (
	namePi = "pi"
	nameE  = "E"
	nameI  = "I"
)

var constantNames = map[string]bool{namePi: true, nameE: true, nameI: true}

// numberMode selects how the printer renders numbers.
type numberMode int

const (
	// exact prints rationals as p/q.
	exact numberMode = iota
	// decimal marks expressions typed with decimal literals; non-integer
	// numbers print as floats.
	decimal
	// floating marks evalf results; every number prints as a float.
	floating
)

// Term is a parsed expression held as a gosymbol tree.
type Term struct {
	node gosymbol.Expr
	mode numberMode
}

func newTerm(node gosymbol.Expr, mode numberMode) *Term {
	return &Term{node: tidy(node), mode: mode}
}

// Node returns the underlying gosymbol expression.
func (t *Term) Node() gosymbol.Expr { return t.node }

func (t *Term) String() string { return format(t.node, t.mode) }

// derive wraps a result computed from t, keeping its number mode.
func (t *Term) derive(node gosymbol.Expr) *Term { return newTerm(node, t.mode) }

// Limit is an unevaluated limit; Doit evaluates it.
type Limit struct {
	expr     *Term
	variable string
	point    *Term
	dir      string
}

func (l *Limit) String() string {
	dir := l.dir
	if dir == "" {
		dir = "+"
	}
	return "Limit(" + l.expr.String() + ", " + l.variable + ", " + l.point.String() + ", dir='" + dir + "')"
}

// Tuple is a parenthesized argument list such as (x**2, x).
type Tuple struct {
	items []mathtypes.Expression
}

func (t *Tuple) String() string {
	parts := make([]string, len(t.items))
	for i, e := range t.items {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Elements implements mathtypes.Tuple.
func (t *Tuple) Elements() []mathtypes.Expression {
	return append([]mathtypes.Expression(nil), t.items...)
}

// FreeSymbols returns the variables of e in lexicographic order. The
// constants pi, E and I are not variables, and a limit binds its own
// variable.
func FreeSymbols(e mathtypes.Expression) []string {
	set := map[string]struct{}{}
	collectFree(e, set)
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func collectFree(e mathtypes.Expression, set map[string]struct{}) {
	switch v := e.(type) {
	case *Term:
		for name := range symbolsOf(v.node) {
			set[name] = struct{}{}
		}
	case *Limit:
		inner := map[string]struct{}{}
		collectFree(v.expr, inner)
		delete(inner, v.variable)
		for name := range inner {
			set[name] = struct{}{}
		}
		collectFree(v.point, set)
	case *Tuple:
		for _, item := range v.items {
			collectFree(item, set)
		}
	}
}

// symbolsOf returns the variables of a gosymbol tree.
func symbolsOf(e gosymbol.Expr) map[string]struct{} {
	set := gosymbol.FreeSymbols(e)
	for name := range constantNames {
		delete(set, name)
	}
	return set
}

func dependsOn(e gosymbol.Expr, variable string) bool {
	_, ok := gosymbol.FreeSymbols(e)[variable]
	return ok
}

var funcBuilders = map[string]func(gosymbol.Expr) gosymbol.Expr{
	"sin": gosymbol.SinOf, "cos": gosymbol.CosOf, "tan": gosymbol.TanOf,
	"asin": gosymbol.AsinOf, "acos": gosymbol.AcosOf, "atan": gosymbol.AtanOf,
	"sinh": gosymbol.SinhOf, "cosh": gosymbol.CoshOf, "tanh": gosymbol.TanhOf,
	"asinh": gosymbol.AsinhOf, "acosh": gosymbol.AcoshOf, "atanh": gosymbol.AtanhOf,
	"exp": gosymbol.ExpOf, "ln": gosymbol.LnOf, "abs": gosymbol.AbsOf,
	"sign": gosymbol.SignOf, "floor": gosymbol.FloorOf, "ceil": gosymbol.CeilOf,
}

// rewrite rebuilds e bottom-up, applying f to every node.
func rewrite(e gosymbol.Expr, f func(gosymbol.Expr) gosymbol.Expr) gosymbol.Expr {
	switch v := e.(type) {
	case *gosymbol.Add:
		terms := make([]gosymbol.Expr, len(v.Terms()))
		for i, t := range v.Terms() {
			terms[i] = rewrite(t, f)
		}
		return f(gosymbol.AddOf(terms...))
	case *gosymbol.Mul:
		factors := make([]gosymbol.Expr, len(v.Factors()))
		for i, x := range v.Factors() {
			factors[i] = rewrite(x, f)
		}
		return f(gosymbol.MulOf(factors...))
	case *gosymbol.Pow:
		return f(gosymbol.PowOf(rewrite(v.Base(), f), rewrite(v.ExpExpr(), f)))
	case *gosymbol.Func:
		if build, ok := funcBuilders[v.FuncName()]; ok {
			return f(build(rewrite(v.Arg(), f)))
		}
	}
	return f(e)
}

// tidy reduces integer powers of I.
func tidy(e gosymbol.Expr) gosymbol.Expr {
	if !dependsOn(e, nameI) {
		return e
	}
	return rewrite(e, func(x gosymbol.Expr) gosymbol.Expr {
		p, ok := x.(*gosymbol.Pow)
		if !ok || !isSymbol(p.Base(), nameI) {
			return x
		}
		n, ok := p.ExpExpr().(*gosymbol.Num)
		if !ok || !n.IsInteger() || !n.Rat().Num().IsInt64() {
			return x
		}
		switch ((n.Rat().Num().Int64() % 4) + 4) % 4 {
		case 0:
			return gosymbol.N(1)
		case 1:
			return gosymbol.S(nameI)
		case 2:
			return gosymbol.N(-1)
		}
		return gosymbol.MulOf(gosymbol.N(-1), gosymbol.S(nameI))
	})
}

func isSymbol(e gosymbol.Expr, name string) bool {
	s, ok := e.(*gosymbol.Sym)
	return ok && s.Name() == name
}

// Infinities share gosymbol's limit representation.
func infinity(sign int) gosymbol.Expr {
	if sign < 0 {
		return gosymbol.CreateConstantNode("-inf")
	}
	return gosymbol.CreateConstantNode("inf")
}

func isInfinity(e gosymbol.Expr) bool {
	c, ok := e.(*gosymbol.ConstantNode)
	return ok && (c.String() == "inf" || c.String() == "-inf")
}
