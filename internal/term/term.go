// Package term resolves whether ANSI colors are used and holds the escape
// sequences shared by the banner and the table renderer.
//
// [Configure] runs once during startup (from [logging.NewLogger]); when colors
// are disabled every sequence is the empty string, so concatenation is a no-op.
package term

import (
	"io"
	"os"
	"strings"

	"github.com/backmassage/picrename/internal/config"
)

// ANSI color codes. Empty when colors are disabled.
var (
	Magenta = ""
	NC      = "" // Reset sequence.
)

// Configure resolves the color mode against stdout and sets the package-level
// sequences. It reports the resolved state.
func Configure(mode config.ColorMode) bool {
	if Resolve(mode, os.Stdout) {
		Magenta = "\033[1;95m"
		NC = "\033[0m"
		return true
	}
	Magenta, NC = "", ""
	return false
}

// Enabled reports whether ANSI colors are currently active.
func Enabled() bool { return NC != "" }

// Resolve determines whether colors should be enabled for w based on the
// configured mode, TTY detection, and the NO_COLOR env var (https://no-color.org).
func Resolve(mode config.ColorMode, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default: // ColorAuto
		f, ok := w.(*os.File)
		return ok && IsTerminal(f) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// IsTerminal reports whether f is attached to a TTY (character device).
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
