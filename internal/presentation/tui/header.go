package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
)

const headerNameWidth = 20

func (m model) HeaderView() string {
	bold := m.theme.TextAccent().Bold(true).Render
	accent := m.theme.TextAccent().Render
	base := m.theme.Base().Render
	cursor := m.theme.Base().Background(m.theme.Brand()).Render(" ")

	logo := bold("chat lobby") + cursor
	name := ansi.Truncate(sanitize(m.snapshot.User.Username), headerNameWidth, "…")
	user := base("as ") + accent(name)

	where := base("lobby")
	if room := m.snapshot.CurrentRoom; room != nil && m.page == chatPage {
		where = accent("#" + room.Code)
	}

	var tabs []string
	switch m.size {
	case small:
		tabs = []string{logo, where}
	default:
		tabs = []string{logo, user, where}
	}

	header := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(m.renderer.NewStyle().Foreground(m.theme.Border())).
		Row(tabs...).
		Width(m.widthContent).
		StyleFunc(func(row, col int) lipgloss.Style {
			return m.theme.Base().
				Padding(0, 1).
				AlignHorizontal(lipgloss.Center)
		}).
		Render()

	return lipgloss.Place(
		m.widthContainer,
		lipgloss.Height(header),
		lipgloss.Center,
		lipgloss.Center,
		header,
	)
}
