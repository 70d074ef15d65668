package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/hilthontt/chatlobby/internal/presentation/humanize"
)

const (
	roomCodeLength = 6
	roomNameColumn = 22
	hostColumn     = 14
)

type lobbyState struct {
	codeInput textinput.Model
	cursor    int
}

func newLobbyState() lobbyState {
	in := newInput("ROOM CODE", roomCodeLength)
	in.Width = roomCodeLength + 1
	return lobbyState{codeInput: in}
}

func (m model) LobbySwitch() model {
	m = m.SwitchPage(lobbyPage)
	m.state.chat.input.Blur()
	m.state.lobby.codeInput.Reset()
	m.state.lobby.codeInput.Blur()
	return m
}

func (m model) LobbyUpdate(msg tea.Msg) (model, tea.Cmd) {
	s := &m.state.lobby

	if s.codeInput.Focused() {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, keys.Enter):
				_, err := m.lobby.JoinByCode(m.context, s.codeInput.Value())
				m.logOutcome("join by code", err)
				if err == nil {
					s.codeInput.Reset()
					s.codeInput.Blur()
				}
				return m.refresh(), nil
			case key.Matches(msg, keys.Back):
				s.codeInput.Blur()
				m.state.footer.commands = m.footerCommands()
				return m, nil
			}
		}

		var cmd tea.Cmd
		s.codeInput, cmd = s.codeInput.Update(msg)
		return m, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	rooms := m.snapshot.PublicRooms
	switch {
	case key.Matches(keyMsg, keys.Username):
		return m.openUsernameModal(), textinput.Blink
	case key.Matches(keyMsg, keys.NewRoom):
		return m.openCreateRoomModal(), textinput.Blink
	case key.Matches(keyMsg, keys.JoinByCode):
		cmd := s.codeInput.Focus()
		m.state.footer.commands = m.footerCommands()
		return m, cmd
	case key.Matches(keyMsg, keys.Up):
		s.cursor = clampCursor(s.cursor-1, len(rooms))
	case key.Matches(keyMsg, keys.Down):
		s.cursor = clampCursor(s.cursor+1, len(rooms))
	case key.Matches(keyMsg, keys.Enter):
		if len(rooms) == 0 {
			return m, nil
		}
		_, err := m.lobby.Join(m.context, rooms[s.cursor].ID)
		m.logOutcome("join", err)
		return m.refresh(), textinput.Blink
	}

	return m, nil
}

func (m model) LobbyView() string {
	s := m.state.lobby

	var sections []string

	sections = append(sections, m.theme.TextBrand().Bold(true).Render("Chat Lobby"))
	sections = append(sections, m.theme.TextBody().Render("Create a room or join one to start chatting."))
	sections = append(sections, "")

	label := m.theme.TextAccent().Render("Join with code:")
	if !s.codeInput.Focused() {
		label += m.theme.TextBody().Faint(true).Render("  press j")
	}
	sections = append(sections, label, s.codeInput.View(), "")

	sections = append(sections, m.theme.TextAccent().Bold(true).Render("Public Rooms"))
	if len(m.snapshot.PublicRooms) == 0 {
		sections = append(sections,
			m.theme.TextBody().Faint(true).Render("No public rooms available"),
			m.theme.TextBody().Faint(true).Render("Create a room to get started!"),
		)
	} else {
		sections = append(sections, m.roomTable())
	}

	return m.theme.Base().
		Width(m.widthContent).
		PaddingLeft(1).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m model) roomTable() string {
	now := m.now()
	rows := make([][]string, 0, len(m.snapshot.PublicRooms))
	for _, r := range m.snapshot.PublicRooms {
		rows = append(rows, []string{
			ansi.Truncate(sanitize(r.Name), roomNameColumn, "…"),
			"#" + r.Code,
			ansi.Truncate(sanitize(r.HostName), hostColumn, "…"),
			strconv.Itoa(r.ParticipantCount),
			humanize.RelativeTime(r.CreatedAt, now),
		})
	}

	headers := []string{"Room", "Code", "Host", "Users", "Created"}
	if m.size == small {
		headers = headers[:2]
		for i := range rows {
			rows[i] = rows[i][:2]
		}
	}

	cursor := m.state.lobby.cursor
	focused := !m.state.lobby.codeInput.Focused()

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(m.renderer.NewStyle().Foreground(m.theme.Border())).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := m.theme.Base().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return style.Foreground(m.theme.Accent()).Bold(true)
			case row == cursor && focused:
				return style.Foreground(m.theme.Highlight()).Bold(true)
			}
			return style
		}).
		Render()
}

func roomSummary(code string, participants int, privacy string) string {
	return strings.Join([]string{
		"#" + code,
		humanize.Participants(participants),
		privacy,
	}, " • ")
}
