package ui

import (
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ShouldUseColor decides whether output gets ANSI styling.
//
// Precedence follows the informal CLI conventions:
//   - NO_COLOR set (any value) disables color, always
//   - CLICOLOR=0 disables color
//   - CLICOLOR_FORCE set (non-"0") enables color even when piped
//   - otherwise: color only on a TTY whose profile supports it
func ShouldUseColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("CLICOLOR") == "0" {
		return false
	}
	if force := os.Getenv("CLICOLOR_FORCE"); force != "" && force != "0" {
		return true
	}
	if !IsTerminal() {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}

// ShouldUseEmoji reports whether icon glyphs are safe to print.
// STRATA_NO_EMOJI disables them; otherwise they follow TTY state.
func ShouldUseEmoji() bool {
	if os.Getenv("STRATA_NO_EMOJI") != "" {
		return false
	}
	return IsTerminal()
}
