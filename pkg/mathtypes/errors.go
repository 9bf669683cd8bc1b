package mathtypes

import "errors"

// Error kinds. Concrete errors carry detail and unwrap to one of these, so
// callers classify failures with errors.Is.
var (
	// ErrParse means the text could not be tokenized or interpreted.
	ErrParse = errors.New("parse error")

	// ErrSolve means an equation has no representable solution set.
	ErrSolve = errors.New("solve error")

	// ErrEvaluation means an expression could not be evaluated, for example
	// because free variables remain.
	ErrEvaluation = errors.New("evaluation error")

	// ErrDependencyMissing means an optional backend is not available.
	ErrDependencyMissing = errors.New("dependency missing")
)
