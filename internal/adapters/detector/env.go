// Package detector provides terminal and CI detection for output and colour selection.
package detector

import (
	"os"

	"github.com/muesli/termenv"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// ColorMode selects how the renderer colours its output.
type ColorMode int

const (
	// ColorAuto colours output on terminals and in CI.
	ColorAuto ColorMode = iota
	// ColorAlways forces ANSI colours.
	ColorAlways
	// ColorNever disables colours.
	ColorNever
)

// ParseColorMode parses one of "auto", "always" or "never". Empty means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, zerr.With(zerr.New("invalid color mode, expected auto, always or never"), "color", s)
	}
}

// IsCI reports whether a CI environment variable is set.
func IsCI() bool {
	ci := os.Getenv("CI")
	return ci == "true" || ci == "1"
}

// IsInteractive reports whether stdout is a terminal outside of CI.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && !IsCI()
}

// ResolveProfile returns the colour profile for mode. NO_COLOR always wins.
func ResolveProfile(mode ColorMode) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}

	switch mode {
	case ColorNever:
		return termenv.Ascii
	case ColorAlways:
		return termenv.ANSI
	default:
		if IsInteractive() {
			return termenv.EnvColorProfile()
		}
		if IsCI() {
			// Use ANSI for basic color support in CI
			return termenv.ANSI
		}
		return termenv.Ascii
	}
}
