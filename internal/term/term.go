// Package term resolves whether ANSI color is used and applies the accent
// color to the few strings the CLI paints itself. Leveled log lines are
// colored by the logger, which asks [Enabled].
package term

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/backmassage/slidereel/internal/config"
)

const (
	accent = "\033[1;95m"
	reset  = "\033[0m"
)

var enabled bool

// Configure resolves mode once during startup (from logging.New).
func Configure(mode config.ColorMode) {
	enabled = resolve(mode)
}

// Enabled reports whether ANSI colors are currently active.
func Enabled() bool { return enabled }

// Accent wraps s in the accent color, or returns it unchanged when colors
// are off.
func Accent(s string) string {
	if !enabled {
		return s
	}
	return accent + s + reset
}

// resolve honors NO_COLOR (https://no-color.org) and TERM=dumb in auto mode.
func resolve(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return IsTerminal(os.Stdout) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// IsTerminal reports whether f is attached to a TTY, including Cygwin/MSYS
// pseudo terminals.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
