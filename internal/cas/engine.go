package cas

import (
	"fmt"

	"mathshell/pkg/mathtypes"
)

// Engine adapts the package functions to mathtypes.Backend. The
// symbolic work is done by gosymbol; this package adds the calculator
// syntax, sympy-style printing and the pieces gosymbol leaves out.
type Engine struct{}

// NewEngine returns a ready engine. It holds no state.
func NewEngine() *Engine { return &Engine{} }

var (
	_ mathtypes.Backend = (*Engine)(nil)
	_ mathtypes.Tuple   = (*Tuple)(nil)
)

// asTerm unwraps an expression for computation, evaluating limits.
func asTerm(e mathtypes.Expression) (*Term, error) {
	switch x := e.(type) {
	case *Term:
		if x != nil {
			return x, nil
		}
	case *Limit:
		if x != nil {
			return x.Doit()
		}
	}
	return nil, fmt.Errorf("unsupported expression type %T: %w", e, mathtypes.ErrEvaluation)
}

// Parse implements mathtypes.Backend.
func (Engine) Parse(text string) (mathtypes.Expression, error) {
	return Parse(text)
}

// FreeSymbols implements mathtypes.Backend.
func (Engine) FreeSymbols(e mathtypes.Expression) []string {
	return FreeSymbols(e)
}

// Equals implements mathtypes.Backend.
func (Engine) Equals(a, b mathtypes.Expression) (bool, error) {
	x, err := asTerm(a)
	if err != nil {
		return false, err
	}
	y, err := asTerm(b)
	if err != nil {
		return false, err
	}
	return Equals(x, y)
}

// Solve implements mathtypes.Backend.
func (Engine) Solve(lhs, rhs mathtypes.Expression, variable string) (mathtypes.Expression, error) {
	l, err := asTerm(lhs)
	if err != nil {
		return nil, err
	}
	r, err := asTerm(rhs)
	if err != nil {
		return nil, err
	}
	s, err := Solve(l, r, variable)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Integrate implements mathtypes.Backend.
func (Engine) Integrate(e mathtypes.Expression, variable string) (mathtypes.Expression, error) {
	x, err := asTerm(e)
	if err != nil {
		return nil, err
	}
	return wrap(Integrate(x, variable))
}

// Diff implements mathtypes.Backend.
func (Engine) Diff(e mathtypes.Expression, variable string) (mathtypes.Expression, error) {
	x, err := asTerm(e)
	if err != nil {
		return nil, err
	}
	return Diff(x, variable), nil
}

// Doit implements mathtypes.Backend. Only limits change; anything else
// is returned as is.
func (Engine) Doit(e mathtypes.Expression) (mathtypes.Expression, error) {
	if l, ok := e.(*Limit); ok {
		return wrap(l.Doit())
	}
	return e, nil
}

// Simplify implements mathtypes.Backend.
func (Engine) Simplify(e mathtypes.Expression) (mathtypes.Expression, error) {
	x, err := asTerm(e)
	if err != nil {
		return nil, err
	}
	return Simplify(x), nil
}

// Evalf implements mathtypes.Backend.
func (Engine) Evalf(e mathtypes.Expression) (mathtypes.Expression, error) {
	x, err := asTerm(e)
	if err != nil {
		return nil, err
	}
	return wrap(Evalf(x))
}

// Numeric implements mathtypes.Backend.
func (Engine) Numeric(e mathtypes.Expression, variable string) (func(float64) float64, error) {
	x, err := asTerm(e)
	if err != nil {
		return nil, err
	}
	for _, s := range FreeSymbols(x) {
		if s != variable {
			return nil, &EvaluationError{Op: "evalf", Expr: x.String(), Reason: "free symbol " + s}
		}
	}
	node := x.node
	return func(v float64) float64 {
		return evalReal(node, map[string]float64{variable: v})
	}, nil
}

// wrap converts a typed result into the interface without leaking a
// typed nil.
func wrap(t *Term, err error) (mathtypes.Expression, error) {
	if err != nil {
		return nil, err
	}
	return t, nil
}
