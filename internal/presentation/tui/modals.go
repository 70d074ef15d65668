package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hilthontt/chatlobby/internal/domain"
)

type modalKind int

const (
	noModal modalKind = iota
	usernameModal
	createRoomModal

	ModalWidth    = 60
	usernameLimit = 32
	roomNameLimit = 50
)

type modalState struct {
	kind    modalKind
	input   textinput.Model
	privacy domain.Privacy
}

func (s modalState) open() bool {
	return s.kind != noModal
}

func (m model) openUsernameModal() model {
	in := newInput("Your display name", usernameLimit)
	in.SetValue(m.snapshot.User.Username)
	in.Focus()

	m.state.modal = modalState{kind: usernameModal, input: in}
	m.state.lobby.codeInput.Blur()
	m.state.footer.commands = m.footerCommands()
	return m
}

func (m model) openCreateRoomModal() model {
	in := newInput("Room name", roomNameLimit)
	in.Focus()

	m.state.modal = modalState{kind: createRoomModal, input: in, privacy: domain.PrivacyPublic}
	m.state.lobby.codeInput.Blur()
	m.state.footer.commands = m.footerCommands()
	return m
}

func (m model) closeModal() model {
	m.state.modal = modalState{kind: noModal}
	m.state.footer.commands = m.footerCommands()
	return m
}

func (m model) ModalUpdate(msg tea.Msg) (model, tea.Cmd) {
	s := &m.state.modal

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Back):
			return m.closeModal(), nil
		case key.Matches(msg, keys.Tab):
			if s.kind == createRoomModal {
				s.privacy = togglePrivacy(s.privacy)
			}
			return m, nil
		case key.Matches(msg, keys.Enter):
			return m.submitModal()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return m, cmd
}

// submitModal keeps the dialog open when the controller rejects the input so
// the user can correct it; the toast explains why.
func (m model) submitModal() (model, tea.Cmd) {
	s := m.state.modal

	var err error
	switch s.kind {
	case usernameModal:
		err = m.lobby.SetDisplayName(m.context, s.input.Value())
		m.logOutcome("set display name", err)
	case createRoomModal:
		_, err = m.lobby.CreateRoom(m.context, s.input.Value(), string(s.privacy))
		m.logOutcome("create room", err)
	}

	if err == nil {
		m = m.closeModal()
	}
	return m.refresh(), textinput.Blink
}

func (m model) ModalView() string {
	s := m.state.modal
	innerWidth := ModalWidth - 4

	var title, help string
	sections := []string{}

	switch s.kind {
	case usernameModal:
		title = "Choose a display name"
		help = "Enter to save • Esc to cancel"
	case createRoomModal:
		title = "Create a room"
		help = "Enter to create • Tab to switch privacy • Esc to cancel"
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(m.theme.Accent()).
		Bold(true).
		AlignHorizontal(lipgloss.Center).
		Width(innerWidth)

	sections = append(sections, titleStyle.Render(title), "", s.input.View())

	if s.kind == createRoomModal {
		sections = append(sections, "", m.privacyChoice(domain.PrivacyPublic)+"   "+m.privacyChoice(domain.PrivacyPrivate))
	}

	sections = append(sections, "", m.theme.TextBody().Faint(true).Width(innerWidth).Align(lipgloss.Center).Render(help))

	box := m.theme.Modal().
		Width(ModalWidth).
		Padding(1, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return lipgloss.Place(
		m.widthContainer,
		lipgloss.Height(box),
		lipgloss.Center,
		lipgloss.Center,
		box,
	)
}

func (m model) privacyChoice(p domain.Privacy) string {
	mark := "( )"
	style := m.theme.TextBody()
	if m.state.modal.privacy == p {
		mark = "(•)"
		style = m.theme.TextHighlight().Bold(true)
	}
	return style.Render(mark + " " + privacyLabel(p))
}

func togglePrivacy(p domain.Privacy) domain.Privacy {
	if p == domain.PrivacyPublic {
		return domain.PrivacyPrivate
	}
	return domain.PrivacyPublic
}
