// Package mathtypes defines the contracts shared by mathshell's components.
//
// The handlers never talk to a concrete algebra engine or chart renderer.
// They depend on the interfaces declared here:
//
//   - Expression: an opaque parsed expression that can print itself
//   - Backend: parsing, solving, calculus, simplification and evaluation
//   - Plotter: a blocking render-and-display operation
//
// The package also holds the error kinds every backend reports through and
// the help metadata handlers expose.
package mathtypes

// Expression is a parsed symbolic expression. Its String form is what the
// user sees, so backends print in a compact infix notation such as x**2 - 4.
type Expression interface {
	String() string
}

// Backend is the computer-algebra collaborator. Implementations must be safe
// for sequential use by one goroutine; no method keeps state across calls.
type Backend interface {
	// Parse turns already-normalized text into an expression. Adjacent
	// factors such as 2x multiply implicitly.
	Parse(text string) (Expression, error)

	// FreeSymbols returns the variable names in e in lexicographic order.
	FreeSymbols(e Expression) []string

	// Equals reports whether a and b are mathematically equal.
	Equals(a, b Expression) (bool, error)

	// Solve solves lhs = rhs for variable over the complex numbers and
	// returns the solution set.
	Solve(lhs, rhs Expression, variable string) (Expression, error)

	// Integrate returns an antiderivative of e with respect to variable.
	Integrate(e Expression, variable string) (Expression, error)

	// Diff returns the first derivative of e with respect to variable.
	Diff(e Expression, variable string) (Expression, error)

	// Doit forces every unevaluated object inside e, such as limits.
	Doit(e Expression) (Expression, error)

	// Simplify returns the simplest equivalent form the backend can find.
	Simplify(e Expression) (Expression, error)

	// Evalf evaluates e to a floating-point number.
	Evalf(e Expression) (Expression, error)

	// Numeric compiles e into a real function of variable. The function
	// returns NaN where e is undefined or not real.
	Numeric(e Expression, variable string) (func(float64) float64, error)
}

// Plotter renders an expression and blocks until the chart is displayed.
type Plotter interface {
	Plot(e Expression, variable string) error
}

// Tuple is an expression holding a parenthesized argument list such as
// (x**2, x). Handlers read an explicit variable from its last element.
type Tuple interface {
	Expression
	Elements() []Expression
}
