package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ShouldUseColor follows the NO_COLOR and CLICOLOR conventions:
// NO_COLOR wins, then CLICOLOR_FORCE, then CLICOLOR=0, then the TTY check.
func ShouldUseColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if force := os.Getenv("CLICOLOR_FORCE"); force != "" && force != "0" {
		return true
	}
	if os.Getenv("CLICOLOR") == "0" {
		return false
	}
	return IsTerminal()
}

// SetColorEnabled switches lipgloss between the detected color profile and
// plain ASCII output.
func SetColorEnabled(enabled bool) {
	if !enabled {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	profile := termenv.EnvColorProfile()
	if profile == termenv.Ascii {
		// Forced color on a non-TTY still gets basic ANSI colors.
		profile = termenv.ANSI
	}
	lipgloss.SetColorProfile(profile)
}
