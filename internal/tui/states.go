package tui

// ViewState is the current screen of an interactive model.
type ViewState int

const (
	// ViewStateLoading shows the spinner until the first fetch completes.
	ViewStateLoading ViewState = iota
	// ViewStateList shows the current page.
	ViewStateList
	// ViewStateDetail shows the selected user.
	ViewStateDetail
	// ViewStateQuitting is terminal.
	ViewStateQuitting
)

// String returns the state name.
func (s ViewState) String() string {
	switch s {
	case ViewStateLoading:
		return "loading"
	case ViewStateList:
		return "list"
	case ViewStateDetail:
		return "detail"
	case ViewStateQuitting:
		return "quitting"
	default:
		return "unknown"
	}
}

// Key bindings, as reported by tea.KeyMsg.String().
const (
	keyQuit      = "q"
	keyCtrlC     = "ctrl+c"
	keyEnter     = "enter"
	keyEsc       = "esc"
	keyBackspace = "backspace"
	keySlash     = "/"
	keyS         = "s"
	keyR         = "r"
	keyReload    = "R"
	keyLeft      = "left"
	keyRight     = "right"
	keyH         = "h"
	keyL         = "l"
	keyPgUp      = "pgup"
	keyPgDown    = "pgdown"
	keyHome      = "home"
	keyEnd       = "end"
)
