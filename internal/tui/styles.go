package tui

import "github.com/charmbracelet/lipgloss"

// Layout defaults.
const (
	defaultWidth  = 100
	defaultHeight = 30
	minHeight     = 5
	borderPadding = 4

	searchInputCharLimit = 64
	searchInputWidth     = 40
)

// Palette.
var (
	ColorHeader   = lipgloss.Color("86")
	ColorLabel    = lipgloss.Color("245")
	ColorValue    = lipgloss.Color("255")
	ColorSubtle   = lipgloss.Color("241")
	ColorInfo     = lipgloss.Color("39")
	ColorWarning  = lipgloss.Color("214")
	ColorCritical = lipgloss.Color("196")
	ColorSelectFg = lipgloss.Color("229")
	ColorSelectBg = lipgloss.Color("57")
	ColorBorder   = lipgloss.Color("62")
)

// Shared styles.
var (
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	LabelStyle    = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle    = lipgloss.NewStyle().Foreground(ColorValue)
	SubtleStyle   = lipgloss.NewStyle().Foreground(ColorSubtle)
	InfoStyle     = lipgloss.NewStyle().Foreground(ColorInfo)
	WarningStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	CriticalStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorCritical)
	BoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorBorder).Padding(0, 1)
)

// Row and table styles.
var (
	SelectedRowStyle   = lipgloss.NewStyle().Foreground(ColorSelectFg).Background(ColorSelectBg)
	TableHeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	TableSelectedStyle = SelectedRowStyle
)

// Page button styles.
var (
	PageButtonStyle       = lipgloss.NewStyle().Foreground(ColorLabel).Padding(0, 1)
	ActivePageButtonStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSelectFg).Background(ColorSelectBg).Padding(0, 1)
)
