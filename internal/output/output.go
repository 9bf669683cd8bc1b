package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice == os.ModeCharDevice
}

// SupportsColor reports whether styled output should be written to w.
// NO_COLOR disables colour; CLICOLOR_FORCE enables it on non-terminals.
func SupportsColor(w io.Writer) bool {
	out := termenv.NewOutput(w)
	if out.EnvNoColor() {
		return false
	}
	return out.EnvColorProfile() != termenv.Ascii
}

// ColorProfile returns the colour profile termenv detects for w.
func ColorProfile(w io.Writer) termenv.Profile {
	return termenv.NewOutput(w).EnvColorProfile()
}
