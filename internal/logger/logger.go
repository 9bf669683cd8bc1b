// Package logger provides centralized logging for mathshell.
// It configures structured logging with support for log files and log levels.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Logger is the global logger instance used throughout mathshell.
var Logger *log.Logger

// output is where the global and component loggers write.
var output io.Writer = os.Stderr

func init() {
	Logger = log.New(os.Stderr)
	Logger.SetTimeFormat("")
	Logger.SetLevel(log.InfoLevel)
}

// Configure sets up the logger from CLI flags and environment variables.
// CLI flags take precedence over MATHSHELL_LOG_LEVEL. In test mode only
// errors are logged so transcripts stay deterministic.
func Configure(logLevel string, logFile string, testMode bool) error {
	level := logLevel
	if level == "" {
		level = strings.ToLower(os.Getenv("MATHSHELL_LOG_LEVEL"))
	}
	if level == "" {
		level = "info"
	}

	var w io.Writer = os.Stderr
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return err
		}
		w = file
	}
	output = w

	Logger = log.New(output)
	Logger.SetTimeFormat("")
	Logger.SetLevel(parseLogLevel(level))

	if testMode {
		Logger.SetLevel(log.ErrorLevel)
	}

	return nil
}

// SetOutput redirects the global logger. Tests use it to capture logs.
func SetOutput(w io.Writer) {
	output = w
	Logger.SetOutput(w)
}

// parseLogLevel maps a level name to its log level. Unknown names,
// including "", fall back to info.
func parseLogLevel(level string) log.Level {
	l, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.InfoLevel
	}
	return l
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg interface{}, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}

// Fatal logs a fatal message with optional key-value pairs and exits.
func Fatal(msg interface{}, keyvals ...interface{}) {
	Logger.Fatal(msg, keyvals...)
}

// Dispatch logs which route an input line took.
func Dispatch(route string, input string) {
	Debug("Dispatching input", "route", route, "input", input)
}

// BackendCall logs a call into the algebra backend.
func BackendCall(op string, expr string, details ...interface{}) {
	Debug("Backend call", "op", op, "expr", expr, "details", details)
}

// levelBadges maps each level to its badge background colour.
var levelBadges = map[log.Level]struct {
	label string
	color string
}{
	log.DebugLevel: {"DEBUG", "240"},
	log.InfoLevel:  {"INFO", "33"},
	log.WarnLevel:  {"WARN", "214"},
	log.ErrorLevel: {"ERROR", "196"},
	log.FatalLevel: {"FATAL", "88"},
}

// keyColors colours the keys the shell and handlers log with.
var keyColors = map[string]string{
	"route":   "46",
	"input":   "39",
	"op":      "213",
	"expr":    "117",
	"state":   "99",
	"session": "51",
	"error":   "196",
}

// NewStyledLogger creates a component logger with its own prefix and
// lipgloss level badges, for example "Shell" or "Handlers".
func NewStyledLogger(prefix string) *log.Logger {
	styles := log.DefaultStyles()
	for level, badge := range levelBadges {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(badge.label).
			Padding(0, 1).
			Background(lipgloss.Color(badge.color)).
			Foreground(lipgloss.Color("15"))
	}
	for key, color := range keyColors {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	styles.Values["error"] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(keyColors["error"]))
	styles.Values["route"] = lipgloss.NewStyle().Bold(true)

	componentLogger := log.NewWithOptions(output, log.Options{Prefix: prefix + " "})
	componentLogger.SetStyles(styles)
	componentLogger.SetLevel(Logger.GetLevel())
	return componentLogger
}
