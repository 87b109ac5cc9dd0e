package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const helpText = "/ search · s sort · ←/→ page · 1-9 jump · ↑/↓ select · enter details · r refresh · R reload · q quit"

// View renders the current view.
func (m *UserListModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateLoading:
		return RenderLoading(m.loading)
	case ViewStateDetail:
		if u := m.list.GetSelectedItem(); u != nil {
			return RenderUserDetail(*u, m.width)
		}
		return m.renderListView()
	case ViewStateList:
		return m.renderListView()
	default:
		return ""
	}
}

func (m *UserListModel) renderListView() string {
	view := m.session.View()
	sections := []string{m.renderHeader()}

	if m.showSearch || m.textInput.Value() != "" {
		sections = append(sections, LabelStyle.Render("Search: ")+m.textInput.View())
	}

	if view.IsEmpty() {
		sections = append(sections, "", InfoStyle.Render(emptyMessage(view)), "")
	} else {
		sections = append(sections, LabelStyle.Render(userRowHeader()), m.list.View(), "")
	}

	if buttons := RenderPageButtons(view); buttons != "" {
		sections = append(sections, buttons)
	}
	sections = append(sections, m.renderStatusBar())

	if m.status != "" {
		sections = append(sections, SubtleStyle.Render(m.status))
	}
	sections = append(sections, SubtleStyle.Render(helpText))

	return lipgloss.NewStyle().MaxWidth(m.width).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *UserListModel) renderHeader() string {
	title := HeaderStyle.Render("USERS")
	if m.session.Loading() {
		title += " " + m.loading.Spinner() + SubtleStyle.Render(" refreshing")
	}
	return title
}

// renderStatusBar shows sort order, page position and match counts.
func (m *UserListModel) renderStatusBar() string {
	view := m.session.View()
	page := view.Page()
	if view.TotalPages == 0 {
		page = 0
	}
	status := fmt.Sprintf("Sort: Name %s | Page %d/%d | %d of %d users",
		view.Query.SortOrder.Label(),
		page, view.TotalPages,
		view.TotalMatches, view.TotalRecords,
	)
	return SubtleStyle.Render(status)
}
