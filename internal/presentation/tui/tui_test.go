package tui

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hilthontt/chatlobby/internal/domain"
	"github.com/hilthontt/chatlobby/internal/infrastructure/clipboard"
	"github.com/hilthontt/chatlobby/internal/infrastructure/generator"
	"github.com/hilthontt/chatlobby/internal/infrastructure/repository"
	"github.com/hilthontt/chatlobby/internal/infrastructure/settings"
	"github.com/hilthontt/chatlobby/internal/lobby"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	lobby *lobby.Lobby
	rooms domain.RoomRepository
}

func newFixture(t *testing.T, copyErr error) *fixture {
	t.Helper()

	gen, err := generator.NewGenerator()
	require.NoError(t, err)

	f := &fixture{rooms: repository.NewRoomRepository()}
	f.lobby = lobby.New(f.rooms, settings.NewMemoryStore(""), gen,
		lobby.WithToaster(lobby.NewToaster(time.Hour, time.Hour, gen.NewID)),
		lobby.WithClipboard(clipboard.Func(func(context.Context, string) error { return copyErr })),
	)
	return f
}

func (f *fixture) model() model {
	return newModel(context.Background(), lipgloss.NewRenderer(io.Discard), f.lobby, nil)
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(model)
	require.True(t, ok)
	return nm, cmd
}

func press(t *testing.T, m model, k tea.KeyType) model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: k})
	return m
}

func typeText(t *testing.T, m model, s string) model {
	t.Helper()
	for _, r := range s {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func lastToast(t *testing.T, m model) lobby.Toast {
	t.Helper()
	require.NotEmpty(t, m.snapshot.Toasts)
	return m.snapshot.Toasts[len(m.snapshot.Toasts)-1]
}

// intoLobby dismisses the startup name prompt.
func intoLobby(t *testing.T, m model) model {
	t.Helper()
	m = press(t, m, tea.KeyEsc)
	require.False(t, m.state.modal.open())
	return m
}

func TestStartup_PromptsForDisplayName(t *testing.T) {
	m := newFixture(t, nil).model()

	assert.Equal(t, usernameModal, m.state.modal.kind)
	assert.Equal(t, "Guest", m.state.modal.input.Value())
	assert.Contains(t, m.View(), "Choose a display name")
	assert.Equal(t, lobbyPage, m.page)
}

func TestUsernameModal(t *testing.T) {
	t.Run("saves and closes", func(t *testing.T) {
		m := newFixture(t, nil).model()
		m.state.modal.input.SetValue("")

		m = typeText(t, m, "Alice")
		m = press(t, m, tea.KeyEnter)

		assert.False(t, m.state.modal.open())
		assert.Equal(t, "Alice", m.snapshot.User.Username)
		assert.Equal(t, "Username updated!", lastToast(t, m).Text)
		assert.Contains(t, m.View(), "Alice")
	})

	t.Run("short name keeps the dialog open", func(t *testing.T) {
		m := newFixture(t, nil).model()
		m.state.modal.input.SetValue("")

		m = typeText(t, m, "A")
		m = press(t, m, tea.KeyEnter)

		assert.True(t, m.state.modal.open())
		assert.Equal(t, "Guest", m.snapshot.User.Username)
		assert.Equal(t, lobby.SeverityError, lastToast(t, m).Severity)
	})

	t.Run("reopens with u", func(t *testing.T) {
		m := intoLobby(t, newFixture(t, nil).model())

		m = typeText(t, m, "u")
		assert.Equal(t, usernameModal, m.state.modal.kind)
	})
}

func TestCreateRoom_PrivateThenLeave(t *testing.T) {
	f := newFixture(t, nil)
	m := intoLobby(t, f.model())

	m = typeText(t, m, "n")
	require.Equal(t, createRoomModal, m.state.modal.kind)

	m = typeText(t, m, "Trivia Night")
	m = press(t, m, tea.KeyTab)
	assert.Equal(t, domain.PrivacyPrivate, m.state.modal.privacy)
	m = press(t, m, tea.KeyEnter)

	require.Equal(t, chatPage, m.page)
	require.NotNil(t, m.snapshot.CurrentRoom)
	assert.Equal(t, "Trivia Night", m.snapshot.CurrentRoom.Name)
	assert.Equal(t, domain.PrivacyPrivate, m.snapshot.CurrentRoom.Privacy)
	assert.Empty(t, m.snapshot.PublicRooms)
	assert.Contains(t, m.View(), "#"+m.snapshot.CurrentRoom.Code)

	m = press(t, m, tea.KeyEsc)
	assert.Equal(t, lobbyPage, m.page)
	assert.Nil(t, m.snapshot.CurrentRoom)
	assert.Equal(t, "Left the room", lastToast(t, m).Text)

	rooms, err := f.rooms.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestCreateRoom_EmptyNameStaysOpen(t *testing.T) {
	m := intoLobby(t, newFixture(t, nil).model())

	m = typeText(t, m, "n")
	m = press(t, m, tea.KeyEnter)

	assert.Equal(t, createRoomModal, m.state.modal.kind)
	assert.Equal(t, "Please enter a room name", lastToast(t, m).Text)
	assert.Equal(t, lobbyPage, m.page)
}

func seedRooms(t *testing.T, f *fixture) {
	t.Helper()
	bob := domain.NewUser("bob", "Bob")
	for _, r := range []struct {
		id, code, name string
		privacy        domain.Privacy
	}{
		{"r1", "OPEN01", "Open", domain.PrivacyPublic},
		{"r2", "KEEP01", "Kept", domain.PrivacyPrivate},
		{"r3", "OPEN02", "Also Open", domain.PrivacyPublic},
	} {
		room, err := domain.NewRoom(r.id, r.code, r.name, r.privacy, bob, time.Now())
		require.NoError(t, err)
		require.NoError(t, f.rooms.Create(context.Background(), room))
	}
}

func TestLobby_JoinSelectedRoom(t *testing.T) {
	f := newFixture(t, nil)
	seedRooms(t, f)
	m := intoLobby(t, f.model())

	require.Len(t, m.snapshot.PublicRooms, 2)
	view := m.View()
	assert.Contains(t, view, "Open")
	assert.Contains(t, view, "#OPEN02")
	assert.NotContains(t, view, "KEEP01")

	m = press(t, m, tea.KeyUp)
	assert.Equal(t, 0, m.state.lobby.cursor)
	m = press(t, m, tea.KeyDown)
	m = press(t, m, tea.KeyDown)
	assert.Equal(t, 1, m.state.lobby.cursor)

	m = press(t, m, tea.KeyEnter)
	require.Equal(t, chatPage, m.page)
	assert.Equal(t, "r3", m.snapshot.CurrentRoom.ID)
	assert.Equal(t, 2, m.snapshot.CurrentRoom.ParticipantCount)
}

func TestLobby_JoinByCode(t *testing.T) {
	f := newFixture(t, nil)
	seedRooms(t, f)
	m := intoLobby(t, f.model())

	m = typeText(t, m, "j")
	require.True(t, m.state.lobby.codeInput.Focused())

	m = typeText(t, m, "nope00")
	m = press(t, m, tea.KeyEnter)
	assert.Equal(t, lobbyPage, m.page)
	assert.Equal(t, "Room not found. Please check the room code.", lastToast(t, m).Text)
	assert.True(t, m.state.lobby.codeInput.Focused())

	m.state.lobby.codeInput.SetValue("")
	m = typeText(t, m, "keep01")
	m = press(t, m, tea.KeyEnter)
	require.Equal(t, chatPage, m.page)
	assert.Equal(t, "r2", m.snapshot.CurrentRoom.ID)
	assert.False(t, m.state.lobby.codeInput.Focused())
}

func TestLobby_LettersTypeIntoCodeInput(t *testing.T) {
	m := intoLobby(t, newFixture(t, nil).model())

	m = typeText(t, m, "j")
	m = typeText(t, m, "un")

	assert.False(t, m.state.modal.open())
	assert.Equal(t, "un", m.state.lobby.codeInput.Value())

	m = press(t, m, tea.KeyEsc)
	assert.False(t, m.state.lobby.codeInput.Focused())
}

func TestChat_SendMessage(t *testing.T) {
	m := intoLobby(t, newFixture(t, nil).model())
	m = typeText(t, m, "n")
	m = typeText(t, m, "Room")
	m = press(t, m, tea.KeyEnter)
	require.Equal(t, chatPage, m.page)

	m = press(t, m, tea.KeyEnter)
	assert.Empty(t, m.snapshot.CurrentRoom.Messages)

	m = typeText(t, m, "hello there")
	m = press(t, m, tea.KeyEnter)

	require.Len(t, m.snapshot.CurrentRoom.Messages, 1)
	assert.True(t, m.snapshot.CurrentRoom.Messages[0].IsOwn)
	assert.Empty(t, m.state.chat.input.Value())
	assert.Contains(t, m.state.chat.viewport.View(), "hello there")
	assert.Equal(t, 1, m.state.chat.rendered)
}

func TestChat_CopyRoomCode(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		m := intoLobby(t, newFixture(t, nil).model())
		m = typeText(t, m, "n")
		m = typeText(t, m, "Room")
		m = press(t, m, tea.KeyEnter)

		m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
		require.NotNil(t, cmd)
		msg := cmd()
		require.IsType(t, copyResultMsg{}, msg)
		assert.NoError(t, msg.(copyResultMsg).err)

		m, _ = update(t, m, msg)
		assert.Equal(t, "Room code copied to clipboard!", lastToast(t, m).Text)
	})

	t.Run("failure", func(t *testing.T) {
		m := intoLobby(t, newFixture(t, errors.New("no display")).model())
		m = typeText(t, m, "n")
		m = typeText(t, m, "Room")
		m = press(t, m, tea.KeyEnter)

		m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
		msg := cmd()
		assert.ErrorIs(t, msg.(copyResultMsg).err, domain.ErrClipboardWriteFailed)

		m, _ = update(t, m, msg)
		assert.Equal(t, "Failed to copy room code", lastToast(t, m).Text)
		assert.Equal(t, lobby.SeverityError, lastToast(t, m).Severity)
	})
}

func TestToastMsg_Refreshes(t *testing.T) {
	f := newFixture(t, nil)
	m := intoLobby(t, f.model())

	toast := f.lobby.Toaster().Show(lobby.SeverityInfo, "hello")
	m, _ = update(t, m, ToastMsg{Type: lobby.ToastShown, Toast: toast})
	assert.Equal(t, "hello", lastToast(t, m).Text)
	assert.Contains(t, m.View(), "hello")

	f.lobby.Toaster().Dismiss(toast.ID)
	m, _ = update(t, m, ToastMsg{Type: lobby.ToastDismissed, Toast: toast})
	assert.Empty(t, m.snapshot.Toasts)
}

func TestQuit(t *testing.T) {
	m := newFixture(t, nil).model()

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestResize(t *testing.T) {
	m := newFixture(t, nil).model()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 10, Height: 5})
	assert.Equal(t, undersized, m.size)
	assert.Contains(t, m.View(), "Terminal too small")

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, large, m.size)
	assert.Equal(t, 80, m.widthContainer)
	assert.Equal(t, 30, m.heightContainer)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "red alert", sanitize("\x1b[31mred\x1b[0m\x07 alert"))
	assert.Equal(t, "a b", sanitize("a\nb"))
	assert.Equal(t, "héllo 👋", sanitize("héllo 👋"))
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, "hello\nworld", wrapText("hello world", 6))
	assert.Equal(t, "abcd\nefgh", wrapText("abcdefgh", 4))
	assert.Equal(t, "as is", wrapText("as is", 0))
}
