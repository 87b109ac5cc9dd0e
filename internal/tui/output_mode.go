package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how results are presented.
type OutputMode int

const (
	// OutputModePlain is uncolored text for pipes, CI and NO_COLOR.
	OutputModePlain OutputMode = iota
	// OutputModeStyled is colored, non-interactive output.
	OutputModeStyled
	// OutputModeInteractive runs the Bubble Tea program.
	OutputModeInteractive
)

// String returns the mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputModePlain:
		return "plain"
	case OutputModeStyled:
		return "styled"
	case OutputModeInteractive:
		return "interactive"
	default:
		return "unknown"
	}
}

// terminalProbe reports terminal facts; replaced in tests.
type terminalProbe struct {
	isTTY  func() bool
	lookup func(string) (string, bool)
}

//nolint:gochecknoglobals // swapped by tests
var probe = terminalProbe{
	isTTY: func() bool {
		return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
	},
	lookup: os.LookupEnv,
}

// DetectOutputMode picks the output mode for stdout. plain and noColor force
// OutputModePlain; forceColor yields at least OutputModeStyled off a terminal.
func DetectOutputMode(forceColor, noColor, plain bool) OutputMode {
	if plain || noColor {
		return OutputModePlain
	}
	if _, set := probe.lookup("NO_COLOR"); set {
		return OutputModePlain
	}

	tty := probe.isTTY()
	if v, set := probe.lookup("CI"); set && v != "" && v != "false" && v != "0" {
		tty = false
	}
	if v, _ := probe.lookup("TERM"); v == "dumb" {
		tty = false
	}

	switch {
	case tty:
		return OutputModeInteractive
	case forceColor:
		return OutputModeStyled
	default:
		return OutputModePlain
	}
}

// IsInteractive reports whether stdout and stdin are both terminals.
func IsInteractive() bool {
	return probe.isTTY()
}

// TerminalWidth returns the stdout width, or defaultWidth when unknown.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}
