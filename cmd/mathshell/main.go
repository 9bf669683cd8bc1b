// Package main provides the mathshell CLI entry point.
// mathshell is an interactive symbolic math solver answering in Uzbek.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mathshell/internal/app"
	"mathshell/internal/config"
	"mathshell/internal/golden"
	"mathshell/internal/logger"
	"mathshell/internal/version"
)

// errCheckFailed reports a golden check with mismatching transcripts.
var errCheckFailed = errors.New("golden check failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(config.New()).ExecuteContext(ctx); err != nil {
		logger.Fatal("mathshell failed", "error", err)
	}
}

// cli holds the state shared by the commands: the viper instance bound to
// the flags and the configuration resolved from it.
type cli struct {
	v   *viper.Viper
	cfg *config.Config
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	c := &cli{v: v}

	rootCmd := &cobra.Command{
		Use:   "mathshell",
		Short: "Interactive symbolic math solver",
		Long: `mathshell reads math expressions, equations, integrals, derivatives,
limits and plot requests and answers each one with labelled Uzbek output.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.initConfig,
		RunE:              c.runShell,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	flags.String("log-file", "", "Write logs to file instead of stderr")
	flags.Bool("test-mode", false, "Run in deterministic test mode")
	flags.String("config", "", "Configuration file [default: $XDG_CONFIG_HOME/mathshell/config.yaml]")
	flags.String("theme", "", "Output theme (default|dark|light|plain or a YAML file)")
	flags.String("variable", "", "Default variable for constant integrals, derivatives and plots")

	for key, flag := range map[string]string{
		config.KeyLogLevel:        "log-level",
		config.KeyLogFile:         "log-file",
		config.KeyTestMode:        "test-mode",
		config.KeyConfigFile:      "config",
		config.KeyTheme:           "theme",
		config.KeyDefaultVariable: "variable",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			logger.Fatal("Error binding flag", "flag", flag, "error", err)
		}
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "shell",
			Short: "Start interactive shell mode",
			Args:  cobra.NoArgs,
			RunE:  c.runShell,
		},
		&cobra.Command{
			Use:   "batch <script.math>",
			Short: "Run a script of input lines without entering interactive mode",
			Long: `Run every line of a .math script as if typed at the prompt. Blank lines
and lines starting with '#' are skipped; the transcript goes to stdout.`,
			Args: cobra.ExactArgs(1),
			RunE: c.runBatch,
		},
		&cobra.Command{
			Use:   "eval <input>",
			Short: "Answer a single input line",
			Args:  cobra.MinimumNArgs(1),
			RunE:  c.runEval,
		},
		&cobra.Command{
			Use:   "routes",
			Short: "List the input routes with usage and examples",
			Args:  cobra.NoArgs,
			RunE:  c.runRoutes,
		},
		newCheckCmd(c),
		newVersionCmd(),
	)
	return rootCmd
}

func (c *cli) initConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.v)
	if err != nil {
		return err
	}
	if err := logger.Configure(cfg.Log.Level, cfg.Log.File, cfg.TestMode); err != nil {
		return fmt.Errorf("error configuring logger: %w", err)
	}
	c.cfg = cfg
	logger.Debug("Configuration loaded", "command", cmd.Name(), "variable", cfg.DefaultVariable, "theme", cfg.Theme)
	return nil
}

func (c *cli) runShell(cmd *cobra.Command, _ []string) error {
	logger.Info("Starting mathshell", "version", version.Version)
	return app.New(c.cfg, cmd.OutOrStdout()).RunInteractive(cmd.Context())
}

func (c *cli) runBatch(cmd *cobra.Command, args []string) error {
	scriptPath := args[0]
	logger.Info("Starting mathshell batch mode", "version", version.Version, "script", scriptPath)

	if err := validateScriptFile(scriptPath); err != nil {
		return err
	}
	f, err := os.Open(scriptPath)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := app.New(c.cfg, cmd.OutOrStdout()).RunScript(cmd.Context(), f); err != nil {
		return fmt.Errorf("script execution failed: %w", err)
	}
	logger.Info("Script executed successfully", "script", scriptPath)
	return nil
}

func (c *cli) runEval(cmd *cobra.Command, args []string) error {
	app.New(c.cfg, cmd.OutOrStdout()).Eval(strings.Join(args, " "))
	return nil
}

func (c *cli) runRoutes(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	for _, h := range app.New(c.cfg, out).Registry.GetAll() {
		info := h.HelpInfo()
		_, _ = fmt.Fprintf(out, "%-11s %s\n", info.Route, info.Description)
		_, _ = fmt.Fprintf(out, "            %s\n", info.Usage)
		for _, ex := range info.Examples {
			_, _ = fmt.Fprintf(out, "              %-26s %s\n", ex.Input, ex.Description)
		}
	}
	return nil
}

func newCheckCmd(c *cli) *cobra.Command {
	var record bool
	cmd := &cobra.Command{
		Use:   "check <script.math|dir>...",
		Short: "Compare script transcripts with their .expected files",
		Long: `Run each script in test mode and compare its transcript with the
.expected file next to it. Directories are searched for .math scripts.
With --record the .expected files are written instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd, args, record)
		},
	}
	cmd.Flags().BoolVar(&record, "record", false, "Write .expected files from the current output")
	return cmd
}

func (c *cli) runCheck(cmd *cobra.Command, args []string, record bool) error {
	cfg := *c.cfg
	cfg.TestMode = true
	runner := golden.NewRunner(func(ctx context.Context, script io.Reader, out io.Writer) error {
		return app.New(&cfg, out).RunScript(ctx, script)
	})

	scripts, err := expandScripts(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, script := range scripts {
		if record {
			path, err := runner.Record(cmd.Context(), script)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "recorded %s\n", path)
			continue
		}
		res, err := runner.Check(cmd.Context(), script)
		if err != nil {
			return err
		}
		if res.Passed() {
			_, _ = fmt.Fprintf(out, "PASS %s\n", script)
			continue
		}
		failed++
		_, _ = fmt.Fprintf(out, "FAIL %s\n%s\n", script, res.Diff)
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d scripts", errCheckFailed, failed, len(scripts))
	}
	return nil
}

// expandScripts replaces each directory argument by the scripts inside it.
func expandScripts(args []string) ([]string, error) {
	var scripts []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("script path does not exist: %s", arg)
		}
		if !info.IsDir() {
			scripts = append(scripts, arg)
			continue
		}
		found, err := golden.FindScripts(arg)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, found...)
	}
	if len(scripts) == 0 {
		return nil, fmt.Errorf("no %s scripts found", golden.ScriptExt)
	}
	return scripts, nil
}

func newVersionCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			if verbose {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.Detailed())
				return
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed build information")
	return cmd
}

func validateScriptFile(scriptPath string) error {
	if _, err := os.Stat(scriptPath); os.IsNotExist(err) {
		return fmt.Errorf("script file does not exist: %s", scriptPath)
	}
	if ext := filepath.Ext(scriptPath); ext != golden.ScriptExt {
		return fmt.Errorf("script file must have %s extension, got: %s", golden.ScriptExt, ext)
	}
	return nil
}
