// Package ui separates brewsync's impure presentation concerns from the
// engine, which only ever sees the interfaces defined here. Confirmation
// prompts and group pickers live behind Confirmer and GroupPrompter;
// rendering helpers produce plain strings.
package ui

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// OutputPolicy captures the output decisions made once at startup so no
// engine code reads the process environment itself
type OutputPolicy struct {
	// Color enables styled output
	Color bool
	// Interactive enables prompts; false means confirmations fail closed
	Interactive bool
}

// NewOutputPolicy derives the policy from NO_COLOR, the terminal, and the
// detected color profile
func NewOutputPolicy() OutputPolicy {
	tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	color := tty
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		color = false
	}
	if termenv.ColorProfile() == termenv.Ascii {
		color = false
	}

	return OutputPolicy{Color: color, Interactive: tty}
}

// WithColorMode applies the configured color setting on top of the
// detected policy: "always" forces color on, "never" off, "auto" (or
// anything else) keeps the detected value.
func (p OutputPolicy) WithColorMode(mode string) OutputPolicy {
	switch mode {
	case "always":
		p.Color = true
	case "never":
		p.Color = false
	}
	return p
}

// Apply configures the global pterm state from the policy
func (p OutputPolicy) Apply() {
	if !p.Color {
		pterm.DisableColor()
	}
}
