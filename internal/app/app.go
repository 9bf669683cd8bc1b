// Package app wires mathshell's components from a resolved configuration:
// the printer and theme, the algebra backend, the terminal plotter and the
// handler registry. The CLI and the golden transcript check share it.
package app

import (
	"context"
	"io"
	"os"

	"mathshell/internal/cas"
	"mathshell/internal/config"
	"mathshell/internal/handlers"
	"mathshell/internal/logger"
	"mathshell/internal/output"
	"mathshell/internal/parser"
	"mathshell/internal/plot"
	"mathshell/internal/shell"
	"mathshell/internal/theme"
	"mathshell/pkg/mathtypes"
)

// App is one wired instance of mathshell.
type App struct {
	Config   *config.Config
	Printer  *output.Printer
	Backend  mathtypes.Backend
	Plotter  mathtypes.Plotter
	Registry *handlers.Registry
}

// New wires an App writing to out. Test mode prints plain text; otherwise
// the configured theme styles output when out supports colour.
func New(cfg *config.Config, out io.Writer) *App {
	printerOpts := []output.Option{output.WithWriter(out)}
	if cfg.TestMode {
		printerOpts = append(printerOpts, output.TestMode())
	} else {
		printerOpts = append(printerOpts, output.WithStyles(theme.Get(cfg.Theme)))
	}
	printer := output.NewPrinter(printerOpts...)

	backend := cas.NewEngine()
	plotOpts := []plot.Option{
		plot.WithWriter(printer.ChartWriter()),
		plot.WithSize(cfg.Plot.Width, cfg.Plot.Height),
		plot.WithRange(cfg.Plot.XMin, cfg.Plot.XMax),
	}
	if !cfg.Plot.Enabled {
		plotOpts = append(plotOpts, plot.Disabled())
	}
	plotter := plot.New(backend, plotOpts...)

	registry := handlers.NewDefaultRegistry(handlers.Deps{
		Parser:          parser.NewAdapter(backend),
		Plotter:         plotter,
		DefaultVariable: cfg.DefaultVariable,
		Status:          printer.InfoWriter(),
	})

	logger.Debug("Application wired", "mode", printer.Mode(), "theme", cfg.Theme, "plot", cfg.Plot.Enabled)
	return &App{
		Config:   cfg,
		Printer:  printer,
		Backend:  backend,
		Plotter:  plotter,
		Registry: registry,
	}
}

// Shell returns a loop reading from reader.
func (a *App) Shell(reader shell.LineReader) *shell.Loop {
	return shell.New(a.Registry, reader, a.Printer,
		shell.WithPrompt(a.Config.Prompt),
		shell.WithTestMode(a.Config.TestMode),
	)
}

// RunScript runs a script: blank and '#' lines are skipped and every
// other line is echoed after the prompt, as in an interactive session.
func (a *App) RunScript(ctx context.Context, script io.Reader) error {
	reader := shell.NewScannerReader(script, shell.ScriptMode(), shell.WithEcho(a.Printer))
	return a.Shell(reader).Run(ctx)
}

// RunInteractive reads from the terminal with line editing and history.
// When stdin is not a terminal it reads plain lines instead.
func (a *App) RunInteractive(ctx context.Context) error {
	var reader shell.LineReader
	if output.IsTerminal(os.Stdin) {
		rl, err := shell.NewReadlineReader(a.Config.Prompt, a.Config.HistoryFile)
		if err != nil {
			return err
		}
		reader = rl
	} else {
		reader = shell.NewScannerReader(os.Stdin)
	}
	defer func() { _ = reader.Close() }()
	return a.Shell(reader).Run(ctx)
}

// Eval answers one line.
func (a *App) Eval(line string) {
	a.Shell(nil).Execute(line)
}
