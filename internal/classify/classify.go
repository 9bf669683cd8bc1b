// Package classify routes a raw input line to the handler that should
// answer it. Routing is an ordered rule list evaluated first match wins,
// so a line that satisfies several predicates always lands on the same
// route.
package classify

import "strings"

// Route identifies the handler for an input line.
type Route int

const (
	// Expression is the fallback route for arithmetic and algebra.
	Expression Route = iota
	// Exit terminates the loop.
	Exit
	// Help prints the usage text.
	Help
	// Plot draws a chart.
	Plot
	// Equation solves or checks an equation.
	Equation
	// Integral computes an indefinite integral.
	Integral
	// Derivative computes a first derivative.
	Derivative
	// Limit evaluates a limit.
	Limit
)

// String returns the route name.
func (r Route) String() string {
	switch r {
	case Expression:
		return "expression"
	case Exit:
		return "exit"
	case Help:
		return "help"
	case Plot:
		return "plot"
	case Equation:
		return "equation"
	case Integral:
		return "integral"
	case Derivative:
		return "derivative"
	case Limit:
		return "limit"
	default:
		return "unknown"
	}
}

// Rule pairs a route with its predicate. Match receives the line and its
// lowercase form.
type Rule struct {
	Route Route
	Match func(line, lower string) bool
}

var rules = []Rule{
	{Exit, func(_, lower string) bool { return lower == "exit" || lower == "quit" }},
	{Help, func(_, lower string) bool { return lower == "help" }},
	{Plot, func(_, lower string) bool { return strings.HasPrefix(lower, "plot ") }},
	{Equation, func(line, lower string) bool {
		return strings.Contains(line, "=") && !hasAnyPrefix(lower, "limit", "int", "diff", "plot")
	}},
	{Integral, func(line, lower string) bool {
		return strings.Contains(lower, "integral") || strings.Contains(lower, "integrate") || strings.Contains(line, "∫")
	}},
	{Derivative, func(_, lower string) bool { return hasAnyPrefix(lower, "d/d", "diff", "derivative") }},
	{Limit, func(_, lower string) bool { return strings.Contains(lower, "limit") }},
}

// Rules returns a copy of the ordered rule list. Lines no rule matches
// take the Expression route.
func Rules() []Rule {
	return append([]Rule(nil), rules...)
}

// Classify picks the route for a line. The line is trimmed first.
func Classify(line string) Route {
	line = strings.TrimSpace(line)
	lower := strings.ToLower(line)
	for _, r := range rules {
		if r.Match(line, lower) {
			return r.Route
		}
	}
	return Expression
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
