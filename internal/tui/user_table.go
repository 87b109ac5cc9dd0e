package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/userdir/internal/engine"
	"github.com/rshade/userdir/internal/users"
)

// Column widths shared by the table and the interactive rows.
const (
	colWidthID       = 4
	colWidthName     = 28
	colWidthUsername = 18
	colWidthEmail    = 30
	ellipsis         = "..."
	tableHeaderLines = 2
)

// userColumns returns the username and email of u, or empty strings.
func userColumns(u users.User) (string, string) {
	username, _ := u.Field("username")
	email, _ := u.Field("email")
	return username, email
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= len(ellipsis) {
		return string(r[:width])
	}
	return string(r[:width-len(ellipsis)]) + ellipsis
}

// renderUserRow formats one user for the interactive list.
func renderUserRow(u users.User, selected bool) string {
	username, email := userColumns(u)
	row := fmt.Sprintf("%*d  %-*s  %-*s  %-*s",
		colWidthID, u.ID,
		colWidthName, truncate(u.Name, colWidthName),
		colWidthUsername, truncate(username, colWidthUsername),
		colWidthEmail, truncate(email, colWidthEmail),
	)
	if selected {
		return SelectedRowStyle.Render(row)
	}
	return row
}

// userRowHeader is the header line matching renderUserRow.
func userRowHeader() string {
	return fmt.Sprintf("%*s  %-*s  %-*s  %-*s",
		colWidthID, "ID",
		colWidthName, "Name",
		colWidthUsername, "Username",
		colWidthEmail, "Email",
	)
}

// NewUserTable builds a bubbles table over the users on the current page.
func NewUserTable(view engine.View) table.Model {
	columns := []table.Column{
		{Title: "ID", Width: colWidthID},
		{Title: "Name", Width: colWidthName},
		{Title: "Username", Width: colWidthUsername},
		{Title: "Email", Width: colWidthEmail},
	}

	rows := make([]table.Row, 0, len(view.Users))
	for _, u := range view.Users {
		username, email := userColumns(u)
		rows = append(rows, table.Row{strconv.Itoa(u.ID), u.Name, username, email})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(max(len(rows), 1)+tableHeaderLines),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	// Static output has no cursor.
	s.Selected = s.Cell
	t.SetStyles(s)
	t.Blur()
	return t
}

// RenderUserTable renders the current page with its page buttons for
// non-interactive terminals.
func RenderUserTable(view engine.View, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	if view.IsEmpty() {
		return InfoStyle.Render(emptyMessage(view)) + "\n"
	}

	sections := []string{
		NewUserTable(view).View(),
		"",
		RenderPageButtons(view),
		SubtleStyle.Render(summaryLine(view)),
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(lipgloss.JoinVertical(lipgloss.Left, sections...)) + "\n"
}

// RenderPageButtons renders 1..TotalPages with the current page highlighted.
func RenderPageButtons(view engine.View) string {
	pages := view.PageNumbers()
	if len(pages) == 0 {
		return ""
	}

	buttons := make([]string, len(pages))
	for i, n := range pages {
		style := PageButtonStyle
		if n == view.Page() {
			style = ActivePageButtonStyle
		}
		buttons[i] = style.Render(strconv.Itoa(n))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

// summaryLine describes the visible window, e.g. "Showing 6-10 of 12 users (sorted A→Z)".
func summaryLine(view engine.View) string {
	first, last := view.Bounds()
	line := fmt.Sprintf("Showing %d-%d of %d users (sorted %s)",
		first, last, view.TotalMatches, view.Query.SortOrder.Label())
	if view.Query.SearchTerm != "" {
		line += fmt.Sprintf(" matching %q", view.Query.SearchTerm)
	}
	return line
}

func emptyMessage(view engine.View) string {
	switch {
	case view.TotalRecords == 0:
		return "No users to display."
	case view.Query.SearchTerm != "" && view.TotalMatches == 0:
		return fmt.Sprintf("No users match %q.", view.Query.SearchTerm)
	default:
		return fmt.Sprintf("Page %d is empty.", view.Page())
	}
}

// RenderUserDetail renders every field of u.
func RenderUserDetail(u users.User, width int) string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render("USER DETAIL"))
	content.WriteString("\n\n")
	content.WriteString(LabelStyle.Render("ID:    "))
	content.WriteString(ValueStyle.Render(strconv.Itoa(u.ID)))
	content.WriteString("\n")
	content.WriteString(LabelStyle.Render("Name:  "))
	content.WriteString(ValueStyle.Render(u.Name))
	content.WriteString("\n")

	if len(u.Extra) > 0 {
		keys := make([]string, 0, len(u.Extra))
		for k := range u.Extra {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		content.WriteString("\n")
		content.WriteString(HeaderStyle.Render("FIELDS"))
		content.WriteString("\n")
		for _, k := range keys {
			content.WriteString(LabelStyle.Render(fmt.Sprintf("  %s: ", k)))
			content.WriteString(ValueStyle.Render(fieldValue(u, k)))
			content.WriteString("\n")
		}
	}

	content.WriteString(SubtleStyle.Render("\nPress ESC to return"))

	if width <= borderPadding {
		width = defaultWidth
	}
	return BoxStyle.Width(width - borderPadding).Render(content.String())
}

// fieldValue returns a string field as-is and anything else as compact JSON.
func fieldValue(u users.User, key string) string {
	if s, ok := u.Field(key); ok {
		return s
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, u.Extra[key]); err != nil {
		return string(u.Extra[key])
	}
	return compact.String()
}
