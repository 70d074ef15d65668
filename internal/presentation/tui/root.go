package tui

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hilthontt/chatlobby/internal/infrastructure/logging"
	"github.com/hilthontt/chatlobby/internal/lobby"
	"github.com/hilthontt/chatlobby/internal/presentation/tui/theme"
)

type page = int
type size = int

const (
	lobbyPage page = iota
	chatPage
)

const (
	undersized size = iota
	small
	medium
	large
)

// Lobby is the controller surface the terminal front end drives.
type Lobby interface {
	State(ctx context.Context) (lobby.State, error)
	SetDisplayName(ctx context.Context, name string) error
	CreateRoom(ctx context.Context, name, privacy string) (lobby.RoomView, error)
	Join(ctx context.Context, roomID string) (lobby.RoomView, error)
	JoinByCode(ctx context.Context, code string) (lobby.RoomView, error)
	Leave(ctx context.Context) error
	Send(ctx context.Context, content string) (lobby.MessageView, error)
	CopyRoomCode(ctx context.Context) <-chan error
}

type state struct {
	lobby  lobbyState
	chat   chatState
	modal  modalState
	footer footerState
}

type model struct {
	switched        bool
	renderer        *lipgloss.Renderer
	page            page
	state           state
	context         context.Context
	lobby           Lobby
	snapshot        lobby.State
	logger          logging.Logger
	now             func() time.Time
	viewportWidth   int
	viewportHeight  int
	widthContainer  int
	heightContainer int
	widthContent    int
	heightContent   int
	size            size
	theme           theme.Theme
}

func NewModel(ctx context.Context, renderer *lipgloss.Renderer, l Lobby, logger logging.Logger) (tea.Model, error) {
	m := newModel(ctx, renderer, l, logger)
	return m, nil
}

func newModel(ctx context.Context, renderer *lipgloss.Renderer, l Lobby, logger logging.Logger) model {
	if logger == nil {
		logger = logging.NewNop()
	}

	m := model{
		context:  ctx,
		page:     lobbyPage,
		renderer: renderer,
		lobby:    l,
		logger:   logger,
		now:      time.Now,
		state: state{
			lobby:  newLobbyState(),
			chat:   newChatState(),
			footer: footerState{commands: []footerCommand{}},
		},
		theme: theme.BasicTheme(renderer, nil),
	}

	// Until the first WindowSizeMsg arrives assume a standard terminal.
	m = m.resize(80, 24)
	m = m.refresh()

	// The display name prompt is shown once at startup.
	m = m.openUsernameModal()
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.resize(msg.Width, msg.Height)
		return m, nil
	case ToastMsg:
		m = m.refresh()
		return m, nil
	case copyResultMsg:
		if msg.err != nil {
			m.logger.Debug(logging.Lobby, logging.Clipboard, "copy failed", map[logging.ExtraKey]any{
				logging.ErrorMessage: msg.err.Error(),
			})
		}
		m = m.refresh()
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch {
	case m.state.modal.open():
		m, cmd = m.ModalUpdate(msg)
	case m.page == lobbyPage:
		m, cmd = m.LobbyUpdate(msg)
	case m.page == chatPage:
		m, cmd = m.ChatUpdate(msg)
	}

	if m.switched {
		m.switched = false
	}

	return m, cmd
}

func (m model) View() string {
	if m.size == undersized {
		return m.ResizeView()
	}

	header := m.HeaderView()
	toasts := m.ToastsView()
	footer := m.FooterView()

	content := m.getContent()

	height := m.heightContainer
	height -= lipgloss.Height(header)
	height -= lipgloss.Height(footer)
	if toasts != "" {
		height -= lipgloss.Height(toasts)
	}

	body := m.theme.Base().Width(m.widthContainer).Height(max(height, 1)).Render(content)

	sb := strings.Builder{}
	sb.WriteString(header)
	sb.WriteString("\n")
	if toasts != "" {
		sb.WriteString(toasts)
		sb.WriteString("\n")
	}
	sb.WriteString(body)
	sb.WriteString("\n")
	sb.WriteString(footer)

	child := lipgloss.JoinVertical(
		lipgloss.Left,
		sb.String(),
	)

	return m.renderer.Place(
		m.viewportWidth,
		m.viewportHeight,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.Base().
			MaxWidth(m.widthContainer).
			MaxHeight(m.heightContainer).
			Render(child),
	)
}

func (m model) ResizeView() string {
	return m.renderer.Place(
		m.viewportWidth,
		m.viewportHeight,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.TextAccent().Render("Terminal too small, please resize."),
	)
}

func (m model) SwitchPage(page page) model {
	m.page = page
	m.switched = true
	return m
}

func (m model) getContent() string {
	if m.state.modal.open() {
		return m.ModalView()
	}
	switch m.page {
	case chatPage:
		return m.ChatView()
	default:
		return m.LobbyView()
	}
}

func (m model) resize(width, height int) model {
	m.viewportWidth = width
	m.viewportHeight = height

	switch {
	case m.viewportWidth < 20 || m.viewportHeight < 10:
		m.size = undersized
		m.widthContainer = m.viewportWidth
		m.heightContainer = m.viewportHeight
	case m.viewportWidth < 50:
		m.size = small
		m.widthContainer = m.viewportWidth
		m.heightContainer = m.viewportHeight
	case m.viewportWidth < 80:
		m.size = medium
		m.widthContainer = 50
		m.heightContainer = int(math.Min(float64(height), 30))
	default:
		m.size = large
		m.widthContainer = 80
		m.heightContainer = int(math.Min(float64(height), 30))
	}

	m.widthContent = m.widthContainer - 2
	m.heightContent = m.heightContainer

	return m.resizeChat()
}

// refresh re-reads the controller snapshot and follows the current room:
// being in a room shows the chat page, otherwise the lobby.
func (m model) refresh() model {
	snap, err := m.lobby.State(m.context)
	if err != nil {
		m.logger.Error(logging.Lobby, logging.Terminal, "failed to read lobby state", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
		return m
	}
	m.snapshot = snap

	switch {
	case snap.CurrentRoom != nil && m.page != chatPage:
		m = m.ChatSwitch()
	case snap.CurrentRoom == nil && m.page != lobbyPage:
		m = m.LobbySwitch()
	}

	if m.page == chatPage {
		m = m.syncMessages()
	}
	m.state.lobby.cursor = clampCursor(m.state.lobby.cursor, len(snap.PublicRooms))
	m.state.footer.commands = m.footerCommands()

	return m
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

// logOutcome records controller rejections; the user already sees a toast.
func (m model) logOutcome(op string, err error) {
	if err == nil {
		return
	}
	m.logger.Debug(logging.Lobby, logging.Terminal, op+" rejected", map[logging.ExtraKey]any{
		logging.ErrorMessage: err.Error(),
	})
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Prompt = "> "
	return in
}
