package cas

import (
	"fmt"

	"mathshell/pkg/mathtypes"
)

// ParseError reports text the parser could not interpret.
type ParseError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *ParseError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("could not parse %q: %s", e.Input, e.Msg)
	}
	return fmt.Sprintf("could not parse %q at position %d: %s", e.Input, e.Pos, e.Msg)
}

// Unwrap classifies the error as mathtypes.ErrParse.
func (e *ParseError) Unwrap() error { return mathtypes.ErrParse }

// SolveError reports an equation without a representable solution set.
type SolveError struct {
	Equation string
	Variable string
	Reason   string
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("cannot solve %s for %s: %s", e.Equation, e.Variable, e.Reason)
}

// Unwrap classifies the error as mathtypes.ErrSolve.
func (e *SolveError) Unwrap() error { return mathtypes.ErrSolve }

// EvaluationError reports an operation that could not produce a value.
// Op names the operation: evalf, diff, integrate or limit.
type EvaluationError struct {
	Op     string
	Expr   string
	Reason string
}

func (e *EvaluationError) Error() string {
	if e.Expr == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.Expr, e.Reason)
}

// Unwrap classifies the error as mathtypes.ErrEvaluation.
func (e *EvaluationError) Unwrap() error { return mathtypes.ErrEvaluation }
