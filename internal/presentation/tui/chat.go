package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hilthontt/chatlobby/internal/domain"
	"github.com/hilthontt/chatlobby/internal/lobby"
	"github.com/hilthontt/chatlobby/internal/presentation/humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const messageLimit = 500

type chatState struct {
	input    textinput.Model
	viewport viewport.Model
	// rendered is the message count last written to the viewport.
	rendered int
}

type copyResultMsg struct {
	err error
}

func newChatState() chatState {
	return chatState{
		input:    newInput("Type a message...", messageLimit),
		viewport: viewport.New(0, 0),
	}
}

func (m model) ChatSwitch() model {
	m = m.SwitchPage(chatPage)
	m.state.lobby.codeInput.Blur()
	m.state.chat.input.Reset()
	m.state.chat.input.Focus()
	m.state.chat.rendered = -1
	return m
}

func (m model) ChatUpdate(msg tea.Msg) (model, tea.Cmd) {
	s := &m.state.chat

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter):
			_, err := m.lobby.Send(m.context, s.input.Value())
			m.logOutcome("send", err)
			if err == nil {
				s.input.Reset()
			}
			return m.refresh(), nil
		case key.Matches(msg, keys.Back):
			err := m.lobby.Leave(m.context)
			m.logOutcome("leave", err)
			return m.refresh(), nil
		case key.Matches(msg, keys.CopyCode):
			return m, m.copyRoomCode()
		case key.Matches(msg, keys.PageUp), key.Matches(msg, keys.PageDown):
			var cmd tea.Cmd
			s.viewport, cmd = s.viewport.Update(msg)
			return m, cmd
		}
	}

	if _, ok := msg.(tea.MouseMsg); ok {
		var cmd tea.Cmd
		s.viewport, cmd = s.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return m, cmd
}

func (m model) copyRoomCode() tea.Cmd {
	done := m.lobby.CopyRoomCode(m.context)
	return func() tea.Msg {
		return copyResultMsg{err: <-done}
	}
}

func (m model) ChatView() string {
	room := m.snapshot.CurrentRoom
	if room == nil {
		return ""
	}

	title := m.theme.TextBrand().Bold(true).Render(sanitize(room.Name))
	meta := m.theme.TextBody().Render(roomSummary(room.Code, room.ParticipantCount, privacyLabel(room.Privacy)))
	host := m.theme.TextBody().Faint(true).Render("Hosted by " + sanitize(room.HostName))

	input := m.theme.Base().
		Width(m.widthContent).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.theme.Border()).
		Render(m.state.chat.input.View())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", meta),
		host,
		m.state.chat.viewport.View(),
		input,
	)
}

// syncMessages rewrites the viewport and scrolls to the newest message when
// the room gained messages since the last render.
func (m model) syncMessages() model {
	room := m.snapshot.CurrentRoom
	if room == nil {
		return m
	}

	s := &m.state.chat
	s.viewport.SetContent(m.renderMessages(room.Messages))
	if len(room.Messages) != s.rendered {
		s.viewport.GotoBottom()
		s.rendered = len(room.Messages)
	}
	return m
}

func (m model) renderMessages(messages []lobby.MessageView) string {
	width := m.state.chat.viewport.Width
	if len(messages) == 0 {
		return m.theme.TextBody().
			Faint(true).
			Width(width).
			Align(lipgloss.Center).
			Render("No messages yet. Say hello!")
	}

	bubble := max(width*3/4, 10)
	blocks := make([]string, 0, len(messages))
	for _, msg := range messages {
		author := m.theme.TextAccent().Bold(true).Render(sanitize(msg.Username))
		clock := m.theme.TextBody().Faint(true).Render(humanize.MessageTime(msg.Timestamp))
		content := m.theme.TextBody().Render(wrapText(sanitize(msg.Content), bubble))

		align := lipgloss.Left
		if msg.IsOwn {
			author = m.theme.TextHighlight().Bold(true).Render("You")
			align = lipgloss.Right
		}

		block := lipgloss.JoinVertical(align, author+" "+clock, content)
		blocks = append(blocks, m.theme.Base().Width(width).Align(align).Render(block))
	}
	return strings.Join(blocks, "\n\n")
}

func (m model) resizeChat() model {
	s := &m.state.chat
	s.viewport.Width = max(m.widthContent, 1)
	// header, toasts, room title lines and input border leave the rest to messages
	s.viewport.Height = max(m.heightContainer-14, 3)
	s.input.Width = max(m.widthContent-4, 1)
	if m.page == chatPage {
		m = m.syncMessages()
	}
	return m
}

func privacyLabel(p domain.Privacy) string {
	return cases.Title(language.English).String(string(p))
}
