package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type footerCommand struct {
	key   string
	value string
}

type footerState struct {
	commands []footerCommand
}

func command(b key.Binding) footerCommand {
	h := b.Help()
	return footerCommand{key: h.Key, value: h.Desc}
}

// footerCommands lists the bindings live in the current page or modal.
func (m model) footerCommands() []footerCommand {
	switch {
	case m.state.modal.kind == createRoomModal:
		return []footerCommand{command(keys.Enter), command(keys.Tab), command(keys.Back)}
	case m.state.modal.open():
		return []footerCommand{command(keys.Enter), command(keys.Back)}
	case m.page == chatPage:
		return []footerCommand{
			{key: "enter", value: "send"},
			command(keys.CopyCode),
			{key: "esc", value: "leave"},
			command(keys.Quit),
		}
	case m.state.lobby.codeInput.Focused():
		return []footerCommand{{key: "enter", value: "join"}, command(keys.Back)}
	default:
		return []footerCommand{
			command(keys.Username),
			command(keys.NewRoom),
			command(keys.JoinByCode),
			{key: "↑/↓", value: "select"},
			{key: "enter", value: "join"},
			command(keys.Quit),
		}
	}
}

func (m model) FooterView() string {
	bold := m.theme.TextAccent().Bold(true).Render
	base := m.theme.Base().Render

	table := m.theme.Base().
		Width(m.widthContent).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.theme.Border()).
		Align(lipgloss.Center)

	commands := m.state.footer.commands
	if m.size == small && len(commands) > 3 {
		commands = commands[:3]
	}

	lines := []string{}
	for _, cmd := range commands {
		lines = append(lines, bold(" "+cmd.key+" ")+base(cmd.value+"  "))
	}

	footer := table.Render(wrapText(lipgloss.JoinHorizontal(lipgloss.Center, lines...), m.widthContent))

	return lipgloss.Place(
		m.widthContainer,
		lipgloss.Height(footer),
		lipgloss.Center,
		lipgloss.Center,
		footer,
	)
}
