package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure_Levels(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		env      string
		testMode bool
		expected log.Level
	}{
		{"default", "", "", false, log.InfoLevel},
		{"flag wins", "debug", "error", false, log.DebugLevel},
		{"env fallback", "", "warn", false, log.WarnLevel},
		{"unknown level", "loud", "", false, log.InfoLevel},
		{"test mode logs errors only", "debug", "", true, log.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MATHSHELL_LOG_LEVEL", tt.env)
			require.NoError(t, Configure(tt.flag, "", tt.testMode))
			assert.Equal(t, tt.expected, Logger.GetLevel())
		})
	}
}

func TestConfigure_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mathshell.log")
	require.NoError(t, Configure("info", path, false))
	t.Cleanup(func() { _ = Configure("", "", false) })

	Info("session started", "session", "abc")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "session started")
}

func TestConfigure_BadLogFile(t *testing.T) {
	err := Configure("info", filepath.Join(t.TempDir(), "missing", "x.log"), false)
	assert.Error(t, err)
}

func TestNewStyledLogger(t *testing.T) {
	require.NoError(t, Configure("debug", "", false))
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { _ = Configure("", "", false) })

	l := NewStyledLogger("Shell")
	assert.Equal(t, log.DebugLevel, l.GetLevel())

	l.Debug("dispatch", "route", "limit")
	assert.Contains(t, buf.String(), "Shell")
	assert.Contains(t, buf.String(), "dispatch")
}
