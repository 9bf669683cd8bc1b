package classify

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		input    string
		expected Route
	}{
		{"exit", Exit},
		{"QUIT", Exit},
		{"  Exit  ", Exit},
		{"exit now", Expression},
		{"help", Help},
		{"HELP", Help},
		{"plot x^2", Plot},
		{"Plot sin(x)", Plot},
		{"plotx", Expression},
		{"x^2 - 4 = 0", Equation},
		{"2+2=4", Equation},
		{"integral x^2 dx", Integral},
		{"integrate(x^2, x)", Integral},
		{"∫ x^2", Integral},
		{"d/dx sin(x)", Derivative},
		{"diff(x^3)", Derivative},
		{"derivative x^2", Derivative},
		{"limit(sin(x)/x, x, 0)", Limit},
		{"Limit(1/x, x, oo)", Limit},
		{"2+3*4", Expression},
		{"factor(x^2-4)", Expression},
		{"sqrt(16)", Expression},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.input))
		})
	}
}

// Lines that satisfy more than one predicate resolve by rule order.
func TestClassify_Precedence(t *testing.T) {
	tests := []struct {
		input    string
		expected Route
		reason   string
	}{
		{"plot x = 2", Plot, "plot wins over equation"},
		{"limit(x, x, 0) = 1", Limit, "limit prefix is excluded from equations"},
		{"integrate(x) = y", Integral, "int prefix is excluded from equations"},
		{"diff(x) = 1", Derivative, "diff prefix is excluded from equations"},
		{"x + limit = 2", Equation, "equation wins over limit when the prefix is not excluded"},
		{"a*integral = 3", Equation, "equation wins over integral"},
		{"diff integral x", Integral, "integral wins over derivative"},
		{"d/dx limit", Derivative, "derivative wins over limit"},
		{"interest = 5", Expression, "int prefix also excludes unrelated words"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.input), tt.reason)
		})
	}
}

func TestRules_Order(t *testing.T) {
	var got []string
	for _, r := range Rules() {
		got = append(got, r.Route.String())
	}
	want := []string{"exit", "help", "plot", "equation", "integral", "derivative", "limit"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rule order mismatch (-want +got):\n%s", diff)
	}
}

func TestRules_ReturnsCopy(t *testing.T) {
	rs := Rules()
	rs[0] = Rule{Route: Limit, Match: func(string, string) bool { return true }}
	assert.Equal(t, Exit, Classify("exit"))
}

func TestRoute_String(t *testing.T) {
	assert.Equal(t, "expression", Expression.String())
	assert.Equal(t, "unknown", Route(99).String())
}
