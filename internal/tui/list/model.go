package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders an item. selected is true for the highlighted row.
type RenderFunc[T any] func(item T, selected bool) string

// SelectListModel is a list of items with a single highlighted row.
type SelectListModel[T any] struct {
	// items is the current page
	items []T

	// renderFunc renders a single item
	renderFunc RenderFunc[T]

	// selected is the highlighted index (0-based)
	selected int

	// width is the viewport width in columns
	width int
}

// NewSelectListModel creates a list over items.
func NewSelectListModel[T any](items []T, width int, renderFunc RenderFunc[T]) *SelectListModel[T] {
	return &SelectListModel[T]{
		items:      items,
		renderFunc: renderFunc,
		width:      width,
	}
}

// Init implements tea.Model.
func (m *SelectListModel[T]) Init() tea.Cmd {
	return nil
}

// Update moves the selection on up/down and j/k.
func (m *SelectListModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m *SelectListModel[T]) handleKeyMsg(msg tea.KeyMsg) {
	switch msg.String() {
	case "up", "k":
		m.SetSelected(m.selected - 1)
	case "down", "j":
		m.SetSelected(m.selected + 1)
	}
}

// SetItems replaces the items and clamps the selection.
func (m *SelectListModel[T]) SetItems(items []T) {
	m.items = items
	m.SetSelected(m.selected)
}

// View renders every item, one per line.
func (m *SelectListModel[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}

	lines := make([]string, len(m.items))
	for i, item := range m.items {
		lines[i] = m.renderFunc(item, i == m.selected)
	}
	return strings.Join(lines, "\n")
}

// ItemCount returns the number of items.
func (m *SelectListModel[T]) ItemCount() int {
	return len(m.items)
}

// Selected returns the highlighted index.
func (m *SelectListModel[T]) Selected() int {
	return m.selected
}

// SetSelected moves the highlight, capping to valid bounds.
func (m *SelectListModel[T]) SetSelected(index int) {
	switch {
	case len(m.items) == 0, index < 0:
		m.selected = 0
	case index >= len(m.items):
		m.selected = len(m.items) - 1
	default:
		m.selected = index
	}
}

// Width returns the viewport width.
func (m *SelectListModel[T]) Width() int {
	return m.width
}

// GetSelectedItem returns the highlighted item, or nil for an empty list.
func (m *SelectListModel[T]) GetSelectedItem() *T {
	if len(m.items) == 0 || m.selected < 0 || m.selected >= len(m.items) {
		return nil
	}
	return &m.items[m.selected]
}
