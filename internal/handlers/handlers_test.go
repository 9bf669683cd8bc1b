package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathshell/internal/cas"
	"mathshell/internal/classify"
	"mathshell/internal/parser"
	"mathshell/internal/testutils"
	"mathshell/pkg/mathtypes"
)

func newDeps() (Deps, *bytes.Buffer, *testutils.FakePlotter) {
	status := &bytes.Buffer{}
	plotter := &testutils.FakePlotter{}
	return Deps{
		Parser:          parser.NewAdapter(cas.NewEngine()),
		Plotter:         plotter,
		DefaultVariable: "x",
		Status:          status,
	}, status, plotter
}

func TestEquationHandler(t *testing.T) {
	deps, _, _ := newDeps()
	h := NewEquationHandler(deps)

	tests := []struct {
		input    string
		expected string
	}{
		{"x^2 - 9 = 0", "Tenglama: x^2 - 9 = 0\nO'zgaruvchi: x\nYechim: {-3, 3}"},
		{"x^2-4=0", "Tenglama: x^2-4 = 0\nO'zgaruvchi: x\nYechim: {-2, 2}"},
		{"x^2+1=0", "Tenglama: x^2+1 = 0\nO'zgaruvchi: x\nYechim: {-I, I}"},
		{"2+2=4", "Tenglama: 2+2 = 4\nNatija: To'g'ri"},
		{"2+2=5", "Tenglama: 2+2 = 5\nNatija: Noto'g'ri"},
		{"sqrt(8) = 2*sqrt(2)", "Tenglama: sqrt(8) = 2*sqrt(2)\nNatija: To'g'ri"},
		{"y+x=1", "Tenglama: y+x = 1\nO'zgaruvchi: x\nYechim: {-y + 1}"},
		{"x = x", "Tenglama: x = x\nO'zgaruvchi: x\nYechim: Complexes"},
		{"x = x + 1", "Tenglama: x = x + 1\nO'zgaruvchi: x\nYechim: EmptySet"},
		{"2x = 3", "Tenglama: 2x = 3\nO'zgaruvchi: x\nYechim: {3/2}"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, h.Handle(tt.input))
		})
	}
}

func TestEquationHandler_Errors(t *testing.T) {
	deps, _, _ := newDeps()
	h := NewEquationHandler(deps)

	for _, input := range []string{"x^2 = (", "= 2", "sin(x) = 0", "x == 2"} {
		t.Run(input, func(t *testing.T) {
			assert.True(t, strings.HasPrefix(h.Handle(input), "Tenglamada xato: "), h.Handle(input))
		})
	}
}

// A constant equation's verdict matches comparing the parsed sides.
func TestEquationHandler_VerdictMatchesEquals(t *testing.T) {
	deps, _, _ := newDeps()
	h := NewEquationHandler(deps)
	backend := deps.Parser.Backend()

	pairs := [][2]string{{"1/2", "0.5"}, {"2^10", "1024"}, {"pi", "3"}, {"sin(0)", "0"}, {"sqrt(2)^2", "2"}}
	for _, p := range pairs {
		lhs, err := deps.Parser.Parse(p[0])
		require.NoError(t, err)
		rhs, err := deps.Parser.Parse(p[1])
		require.NoError(t, err)
		equal, err := backend.Equals(lhs, rhs)
		require.NoError(t, err)

		want := "Natija: Noto'g'ri"
		if equal {
			want = "Natija: To'g'ri"
		}
		assert.Contains(t, h.Handle(p[0]+" = "+p[1]), want)
	}
}

func TestIntegralHandler(t *testing.T) {
	deps, _, _ := newDeps()
	h := NewIntegralHandler(deps)

	tests := []struct {
		input    string
		expected string
	}{
		{"integral x^2 dx", "∫ (x**2) dx = x**3/3 + C"},
		{"integral x^2", "∫ (x**2) dx = x**3/3 + C"},
		{"INTEGRAL x", "∫ (x) dx = x**2/2 + C"},
		{"integrate(x^2, x)", "∫ (x**2) dx = x**3/3 + C"},
		{"integrate(x*y, y)", "∫ (x*y) dy = x*y**2/2 + C"},
		{"∫ cos(x)", "∫ (cos(x)) dx = sin(x) + C"},
		{"integral 5", "∫ (5) dx = 5*x + C"},
		{"integral 2x dx", "∫ (2*x) dx = x**2 + C"},
		{"integral t^3", "∫ (t**3) dt = t**4/4 + C"},
		{"integral x^2 integral", "∫ (x**2) dx = x**3/3 + C"},
		{"x^2 integral dx", "∫ (x**2) dx = x**3/3 + C"},
		{"integral sin(x)*cos(x) dx", "∫ (cos(x)*sin(x)) dx = -cos(2*x)/4 + C"},
		{"integral 1/x", "∫ (1/x) dx = log(Abs(x)) + C"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, h.Handle(tt.input))
		})
	}
}

func TestIntegralHandler_DefaultVariable(t *testing.T) {
	deps, _, _ := newDeps()
	deps.DefaultVariable = "t"
	h := NewIntegralHandler(deps)
	assert.Equal(t, "∫ (5) dt = 5*t + C", h.Handle("integral 5"))
}

func TestIntegralHandler_Errors(t *testing.T) {
	deps, _, _ := newDeps()
	h := NewIntegralHandler(deps)

	for _, input := range []string{"integral exp(x^2)", "integral (", "integrate(x, 2)", "integral"} {
		t.Run(input, func(t *testing.T) {
			assert.True(t, strings.HasPrefix(h.Handle(input), "Integral xatosi: "), h.Handle(input))
		})
	}
}

func TestDerivativeHandler(t *testing.T) {
	deps, _, _ := newDeps()
	h := NewDerivativeHandler(deps)

	tests := []struct {
		input    string
		expected string
	}{
		{"diff(x^3)", "d/dx (x**3) = 3*x**2"},
		{"d/dx sin(x)", "d/dx (sin(x)) = cos(x)"},
		{"d/dx x^3", "d/dx (x**3) = 3*x**2"},
		{"d/dx(x^2)", "d/dx (x**2) = 2*x"},
		{"derivative x^2", "d/dx (x**2) = 2*x"},
		{"DIFF(x^2)", "d/dx (x**2) = 2*x"},
		{"diff(x*y, y)", "d/dy (x*y) = x"},
		{"diff(5)", "d/dx (5) = 0"},
		{"diff(x*a_diff)", "d/da_diff (a_diff*x) = x"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, h.Handle(tt.input))
		})
	}
}

func TestDerivativeHandler_Errors(t *testing.T) {
	deps, _, _ := newDeps()
	h := NewDerivativeHandler(deps)

	for _, input := range []string{"d/dx", "diff(x^2", "diff((x, y, z))"} {
		t.Run(input, func(t *testing.T) {
			assert.True(t, strings.HasPrefix(h.Handle(input), "Hosila xatosi: "), h.Handle(input))
		})
	}
}

func TestLimitHandler(t *testing.T) {
	deps, _, _ := newDeps()
	h := NewLimitHandler(deps)

	tests := []struct {
		input    string
		expected string
	}{
		{"limit(sin(x)/x, x, 0)", "Limit natijasi: 1"},
		{"limit(1/x, x, oo)", "Limit natijasi: 0"},
		{"limit(1/x, x, 0, '-')", "Limit natijasi: -oo"},
		{"Limit((x^2-1)/(x-1), x, 1)", "Limit natijasi: 2"},
		{"limit(sin(x)/x", LimitHint},
		{"limitless", LimitHint},
		{"limit(sin(1/x), x, 0)", LimitHint},
		{"limit((1+1/x)^x, x, oo)", LimitHint},
		{"limit((1+x)^(1/x), x, 0)", LimitHint},
		{"limit(x^(1/x), x, oo)", LimitHint},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, h.Handle(tt.input))
		})
	}
}

func TestLimitHandler_EvaluateErrorKinds(t *testing.T) {
	deps, _, _ := newDeps()
	h := NewLimitHandler(deps)

	tests := []struct {
		input string
		kind  error
	}{
		{"limit(sin(x)/x", mathtypes.ErrParse},
		{"limit(x, 2, 0)", mathtypes.ErrParse},
		{"limitless", mathtypes.ErrEvaluation},
		{"limit(sin(1/x), x, 0)", mathtypes.ErrEvaluation},
		{"limit((1+1/x)^x, x, oo)", mathtypes.ErrEvaluation},
		{"limit((1+x)^(1/x), x, 0)", mathtypes.ErrEvaluation},
		{"limit(x^(1/x), x, oo)", mathtypes.ErrEvaluation},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := h.Evaluate(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
		})
	}

	res, err := h.Evaluate("limit(sin(x)/x, x, 0)")
	require.NoError(t, err)
	assert.Equal(t, "1", res)
}

func TestLimitHandler_BackendErrorIsEvaluationKind(t *testing.T) {
	deps, _, _ := newDeps()
	deps.Parser = parser.NewAdapter(&testutils.FaultyBackend{
		Backend: cas.NewEngine(),
		Errors:  map[string]error{"doit": fmt.Errorf("backend exploded")},
	})
	_, err := NewLimitHandler(deps).Evaluate("limit(x, x, 0)")
	assert.True(t, errors.Is(err, mathtypes.ErrEvaluation))
}

func TestPlotHandler(t *testing.T) {
	deps, status, plotter := newDeps()
	h := NewPlotHandler(deps)

	assert.Equal(t, "Grafik yakunlandi.", h.Handle("plot x^2"))
	assert.Equal(t, "Grafik chizilmoqda: x**2 ...\n", status.String())
	assert.Equal(t, []testutils.PlotCall{{Expr: "x**2", Variable: "x"}}, plotter.Calls)

	assert.Equal(t, "Grafik yakunlandi.", h.Handle("PLOT 5"))
	assert.Equal(t, testutils.PlotCall{Expr: "5", Variable: "x"}, plotter.Calls[1])
}

func TestPlotHandler_Failures(t *testing.T) {
	t.Run("no plotter", func(t *testing.T) {
		deps, status, _ := newDeps()
		deps.Plotter = nil
		assert.Equal(t, PlotUnavailable, NewPlotHandler(deps).Handle("plot x"))
		assert.Empty(t, status.String())
	})

	t.Run("backend missing", func(t *testing.T) {
		deps, _, plotter := newDeps()
		plotter.Err = fmt.Errorf("plotting disabled: %w", mathtypes.ErrDependencyMissing)
		assert.Equal(t, PlotUnavailable, NewPlotHandler(deps).Handle("plot x"))
	})

	t.Run("plot error", func(t *testing.T) {
		deps, _, plotter := newDeps()
		plotter.Err = errors.New("boom")
		assert.Equal(t, "Grafik xatosi: boom", NewPlotHandler(deps).Handle("plot x"))
	})

	t.Run("parse error", func(t *testing.T) {
		deps, _, plotter := newDeps()
		out := NewPlotHandler(deps).Handle("plot (")
		assert.True(t, strings.HasPrefix(out, "Grafik xatosi: "), out)
		assert.Empty(t, plotter.Calls)
	})
}

func TestExpressionHandler(t *testing.T) {
	deps, _, _ := newDeps()
	h := NewExpressionHandler(deps)

	tests := []struct {
		input    string
		expected string
	}{
		{"2+3*4", "Ifoda: 14\nTaqribiy qiymat: 14.0000000000000\nSoddalashtirilgan: 14"},
		{"5^2", "Ifoda: 25\nTaqribiy qiymat: 25.0000000000000\nSoddalashtirilgan: 25"},
		{"sqrt(16)", "Ifoda: 4\nTaqribiy qiymat: 4.00000000000000\nSoddalashtirilgan: 4"},
		{"1/3", "Ifoda: 1/3\nTaqribiy qiymat: 0.333333333333333\nSoddalashtirilgan: 1/3"},
		{"x + x", "Ifoda: 2*x\nSoddalashtirilgan: 2*x"},
		{"(x^2-1)/(x-1)", "Ifoda: (x**2 - 1)/(x - 1)\nSoddalashtirilgan: x + 1"},
		{"factor(x^2-4)", "Natija: (x - 2)*(x + 2)"},
		{"expand((x+1)^2)", "Natija: x**2 + 2*x + 1"},
		{"simplify(sin(x)^2 + cos(x)^2)", "Natija: 1"},
		{"0.1+0.2", "Ifoda: 0.300000000000000\nTaqribiy qiymat: 0.300000000000000\nSoddalashtirilgan: 0.300000000000000"},
		{"2^0.5", "Ifoda: 1.41421356237310\nTaqribiy qiymat: 1.41421356237310\nSoddalashtirilgan: 1.41421356237310"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, h.Handle(tt.input))
		})
	}
}

func TestExpressionHandler_Errors(t *testing.T) {
	deps, _, _ := newDeps()
	h := NewExpressionHandler(deps)
	assert.True(t, strings.HasPrefix(h.Handle("2 +"), "Xato: "))
	assert.True(t, strings.HasPrefix(h.Handle("foo(1)"), "Xato: "))

	deps.Parser = parser.NewAdapter(&testutils.FaultyBackend{
		Backend: cas.NewEngine(),
		Errors:  map[string]error{"simplify": errors.New("too slow")},
	})
	assert.Equal(t, "Xato: too slow", NewExpressionHandler(deps).Handle("x"))
}

func TestHelpHandler(t *testing.T) {
	h := NewHelpHandler()
	out := h.Handle("help")
	assert.Equal(t, HelpText, out)
	assert.True(t, strings.HasPrefix(out, "--- QO'LLANMA ---\n1. Hisoblash: 2+2, 5^2, sqrt(16)\n"))
	assert.Len(t, strings.Split(out, "\n"), 9)

	md := h.Markdown()
	assert.Contains(t, md, "## QO'LLANMA")
	assert.Contains(t, md, "1. **Hisoblash**: `2+2, 5^2, sqrt(16)`")
	assert.Contains(t, md, "7. **Chiqish**: `exit`")
}

func TestExitHandler(t *testing.T) {
	assert.Equal(t, "Dastur tugatildi.", NewExitHandler().Handle("exit"))
}

func TestStripKeywords(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"integral x^2", "x^2"},
		{"Integrate(x, x)", "(x, x)"},
		{"∫x", "x"},
		{"integral ∫ x", "x"},
		{"integrals", "integrals"},
		{"x integral", "x"},
		{"integral x^2 integral", "x^2"},
		{"x**2 INTEGRATE", "x**2"},
		{"sub_integral + integral", "sub_integral +"},
		{"diff(x*a_diff)", "(x*a_diff)"},
		{"difference", "difference"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripKeywords(tt.input, "integral", "integrate", "∫", "diff", "derivative"))
		})
	}
}

func TestStripTrailingDx(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"x^2 dx", "x^2"},
		{"x^2dx", "x^2"},
		{"xdx", "xdx"},
		{"3*x + 2dx", "3*x + 2"},
		{"a_dx", "a_dx"},
		{"dx", ""},
		{"x^2", "x^2"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripTrailingDx(tt.input))
		})
	}
}

func TestRegistry(t *testing.T) {
	deps, _, _ := newDeps()
	r := NewDefaultRegistry(deps)

	var names []string
	for _, h := range r.GetAll() {
		names = append(names, h.Name())
		info := h.HelpInfo()
		assert.Equal(t, h.Name(), info.Route)
		assert.NotEmpty(t, info.Usage)
		assert.NotEmpty(t, info.Examples)
	}
	want := []string{"expression", "exit", "help", "plot", "equation", "integral", "derivative", "limit"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("handlers mismatch (-want +got):\n%s", diff)
	}

	err := r.Register(NewExitHandler())
	assert.Error(t, err)

	quiet := &echoHandler{route: classify.Exit}
	r.Replace(quiet)
	got, ok := r.Get(classify.Exit)
	require.True(t, ok)
	assert.Same(t, quiet, got)
	assert.Len(t, r.GetAll(), len(want))

	route, h, err := r.Dispatch("x^2 = 4")
	require.NoError(t, err)
	assert.Equal(t, classify.Equation, route)
	assert.Equal(t, "Tenglama: x^2 = 4\nO'zgaruvchi: x\nYechim: {-2, 2}", h.Handle("x^2 = 4"))

	empty := NewRegistry()
	_, _, err = empty.Dispatch("2+2")
	assert.Error(t, err)
}

// echoHandler answers every line with the line itself.
type echoHandler struct {
	route classify.Route
}

func (h *echoHandler) Route() classify.Route        { return h.route }
func (h *echoHandler) Name() string                 { return h.route.String() }
func (h *echoHandler) Description() string          { return "echo" }
func (h *echoHandler) Usage() string                { return "<anything>" }
func (h *echoHandler) HelpInfo() mathtypes.HelpInfo { return mathtypes.HelpInfo{Route: h.Name()} }
func (h *echoHandler) Handle(line string) string    { return line }
