package shell

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathshell/internal/cas"
	"mathshell/internal/handlers"
	"mathshell/internal/output"
	"mathshell/internal/parser"
	"mathshell/internal/testutils"
	"mathshell/pkg/mathtypes"
)

const banner = BannerTitle + "\n" + BannerHint + "\n"

type harness struct {
	loop    *Loop
	out     *output.CaptureBuffer
	plotter *testutils.FakePlotter
}

func newHarness(backend mathtypes.Backend, reader func(*output.Printer) LineReader, opts ...output.Option) *harness {
	out := output.NewCaptureBuffer()
	printer := output.NewPrinter(append([]output.Option{output.WithWriter(out), output.TestMode()}, opts...)...)
	plotter := &testutils.FakePlotter{}
	registry := handlers.NewDefaultRegistry(handlers.Deps{
		Parser:          parser.NewAdapter(backend),
		Plotter:         plotter,
		DefaultVariable: "x",
		Status:          printer.InfoWriter(),
	})
	loop := New(registry, reader(printer), printer, WithTestMode(true))
	return &harness{loop: loop, out: out, plotter: plotter}
}

func script(lines ...string) func(*output.Printer) LineReader {
	return func(p *output.Printer) LineReader {
		return NewScannerReader(strings.NewReader(testutils.Script(lines...)), WithEcho(p))
	}
}

func TestLoop_Session(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "expression then exit",
			lines: []string{"2+2", "exit", "3+3"},
			want: banner +
				">>> 2+2\n" +
				"Ifoda: 4\n" +
				"Taqribiy qiymat: 4.00000000000000\n" +
				"Soddalashtirilgan: 4\n" +
				">>> exit\n" +
				"Dastur tugatildi.\n",
		},
		{
			name:  "quit is exit",
			lines: []string{"QUIT"},
			want:  banner + ">>> QUIT\nDastur tugatildi.\n",
		},
		{
			name:  "end of input says goodbye",
			lines: []string{"x^2 - 9 = 0"},
			want: banner +
				">>> x^2 - 9 = 0\n" +
				"Tenglama: x^2 - 9 = 0\nO'zgaruvchi: x\nYechim: {-3, 3}\n" +
				"Dastur tugatildi.\n",
		},
		{
			name:  "blank lines re-prompt",
			lines: []string{"", "   ", "exit"},
			want:  banner + ">>> \n>>>    \n>>> exit\nDastur tugatildi.\n",
		},
		{
			name:  "help prints verbatim in plain mode",
			lines: []string{"help", "exit"},
			want:  banner + ">>> help\n" + handlers.HelpText + "\n>>> exit\nDastur tugatildi.\n",
		},
		{
			name:  "errors do not stop the loop",
			lines: []string{"2 +", "limit(x)", "diff(x^2)", "exit"},
			want: banner +
				">>> 2 +\n" +
				"Xato: " + errorText(t, "2 +") + "\n" +
				">>> limit(x)\n" +
				handlers.LimitHint + "\n" +
				">>> diff(x^2)\n" +
				"d/dx (x**2) = 2*x\n" +
				">>> exit\nDastur tugatildi.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(cas.NewEngine(), script(tt.lines...))
			require.NoError(t, h.loop.Run(context.Background()))
			assert.Equal(t, tt.want, h.out.String())
			assert.Equal(t, Terminated, h.loop.State())
		})
	}
}

// errorText returns the parse error the expression handler reports.
func errorText(t *testing.T, input string) string {
	t.Helper()
	_, err := parser.NewAdapter(cas.NewEngine()).Parse(input)
	require.Error(t, err)
	return err.Error()
}

func TestLoop_Plot(t *testing.T) {
	h := newHarness(cas.NewEngine(), script("plot x^2", "exit"))
	require.NoError(t, h.loop.Run(context.Background()))

	assert.Equal(t, banner+
		">>> plot x^2\n"+
		"Grafik chizilmoqda: x**2 ...\n"+
		"Grafik yakunlandi.\n"+
		">>> exit\nDastur tugatildi.\n", h.out.String())
	assert.Equal(t, []testutils.PlotCall{{Expr: "x**2", Variable: "x"}}, h.plotter.Calls)
}

func TestLoop_RecoversFromPanic(t *testing.T) {
	backend := &testutils.FaultyBackend{
		Backend: cas.NewEngine(),
		Panics:  map[string]interface{}{"parse": "boom"},
	}
	h := newHarness(backend, script("2+2", "help", "exit"))
	require.NoError(t, h.loop.Run(context.Background()))

	lines := h.out.Lines()
	assert.Contains(t, lines, "Dastur xatosi: boom")
	assert.Contains(t, lines, "--- QO'LLANMA ---")
	assert.Equal(t, "Dastur tugatildi.", lines[len(lines)-1])
	assert.Equal(t, Terminated, h.loop.State())
}

func TestLoop_MissingHandler(t *testing.T) {
	out := output.NewCaptureBuffer()
	printer := output.NewPrinter(output.WithWriter(out), output.TestMode())
	registry := handlers.NewRegistry()
	require.NoError(t, registry.Register(handlers.NewExitHandler()))

	loop := New(registry, NewScannerReader(strings.NewReader("2+2\nexit\n")), printer, WithPrompt("> "))
	require.NoError(t, loop.Run(context.Background()))
	assert.Equal(t, banner+"Dastur xatosi: no handler for route expression\nDastur tugatildi.\n", out.String())
}

// scriptedReader returns its lines, then err.
type scriptedReader struct {
	lines   []string
	err     error
	prompts []string
}

func (r *scriptedReader) ReadLine(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.lines) == 0 {
		return "", r.err
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptedReader) Close() error { return nil }

func TestLoop_ReaderEnds(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		last    string
		wantErr bool
	}{
		{"interrupt", ErrInterrupt, InterruptMessage, false},
		{"end of input", io.EOF, handlers.Farewell, false},
		{"read failure", errors.New("disk on fire"), "Natija: 2", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &scriptedReader{lines: []string{"simplify(1+1)"}, err: tt.err}
			h := newHarness(cas.NewEngine(), func(*output.Printer) LineReader { return reader })
			err := h.loop.Run(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.err)
			} else {
				require.NoError(t, err)
			}
			lines := h.out.Lines()
			assert.Equal(t, tt.last, lines[len(lines)-1])
			assert.Equal(t, []string{DefaultPrompt, DefaultPrompt}, reader.prompts)
		})
	}
}

// blockingReader blocks until closed.
type blockingReader struct {
	closed chan struct{}
	once   sync.Once
}

func (r *blockingReader) ReadLine(string) (string, error) {
	<-r.closed
	return "", io.EOF
}

func (r *blockingReader) Close() error {
	r.once.Do(func() { close(r.closed) })
	return nil
}

func TestLoop_ContextCancel(t *testing.T) {
	reader := &blockingReader{closed: make(chan struct{})}
	h := newHarness(cas.NewEngine(), func(*output.Printer) LineReader { return reader })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.loop.Run(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop after cancellation")
	}
	assert.Equal(t, banner+InterruptMessage+"\n", h.out.String())
	assert.Equal(t, Terminated, h.loop.State())
}

func TestLoop_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := newHarness(cas.NewEngine(), script("2+2"))
	require.NoError(t, h.loop.Run(ctx))
	assert.Equal(t, banner+InterruptMessage+"\n", h.out.String())
}

func TestLoop_SessionID(t *testing.T) {
	testutils.ResetTestCounters()
	h := newHarness(cas.NewEngine(), script("exit"))
	require.NoError(t, h.loop.Run(context.Background()))
	assert.Equal(t, "00000001-0000-4000-8000-000000000001", h.loop.SessionID())
}

func TestLoop_StyledHelp(t *testing.T) {
	out := output.NewCaptureBuffer()
	printer := output.NewPrinter(
		output.WithWriter(out),
		output.WithStyles(output.NewMockStyleProvider()),
		output.WithMode(output.ModeStyled),
	)
	registry := handlers.NewDefaultRegistry(handlers.Deps{Parser: parser.NewAdapter(cas.NewEngine())})
	loop := New(registry, NewScannerReader(strings.NewReader("help\n")), printer)

	require.NoError(t, loop.Run(context.Background()))
	got := out.String()
	assert.Contains(t, got, "QO'LLANMA")
	assert.Contains(t, got, "Hisoblash")
	assert.NotContains(t, got, "-----------------")
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "Prompting", Prompting.String())
	assert.Equal(t, "Dispatching", Dispatching.String())
	assert.Equal(t, "Terminated", Terminated.String())
	assert.Equal(t, "Unknown", State(42).String())
}

func TestLoop_Execute(t *testing.T) {
	out := output.NewCaptureBuffer()
	printer := output.NewPrinter(output.WithWriter(out), output.TestMode())
	loop := New(handlers.NewDefaultRegistry(handlers.Deps{Parser: parser.NewAdapter(cas.NewEngine())}), nil, printer)

	assert.False(t, loop.Execute("integral x^2"))
	assert.False(t, loop.Execute("  "))
	assert.True(t, loop.Execute("exit"))
	assert.Equal(t, "∫ (x**2) dx = x**3/3 + C\nDastur tugatildi.\n", out.String())
	assert.Equal(t, Terminated, loop.State())
}
