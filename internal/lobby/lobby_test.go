package lobby

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/hilthontt/chatlobby/internal/domain"
	"github.com/hilthontt/chatlobby/internal/infrastructure/clipboard"
	"github.com/hilthontt/chatlobby/internal/infrastructure/generator"
	"github.com/hilthontt/chatlobby/internal/infrastructure/repository"
	"github.com/hilthontt/chatlobby/internal/infrastructure/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

type failingStore struct{}

func (failingStore) LoadUsername() (string, bool) { return "", false }
func (failingStore) SaveUsername(string) error    { return errors.New("disk full") }

type countingRecorder struct {
	created, deleted, sent int
	toasts                 map[string]int
}

func (r *countingRecorder) RoomCreated(domain.Privacy) { r.created++ }
func (r *countingRecorder) RoomDeleted()               { r.deleted++ }
func (r *countingRecorder) MessageSent()               { r.sent++ }
func (r *countingRecorder) ToastShown(s string) {
	if r.toasts == nil {
		r.toasts = make(map[string]int)
	}
	r.toasts[s]++
}

type fixture struct {
	lobby *Lobby
	rooms domain.RoomRepository
	names *settings.MemoryStore
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	gen, err := generator.NewGenerator()
	require.NoError(t, err)

	f := &fixture{
		rooms: repository.NewRoomRepository(),
		names: settings.NewMemoryStore(""),
	}
	base := []Option{
		WithToaster(NewToaster(time.Hour, time.Hour, gen.NewID)),
		WithClipboard(clipboard.Func(func(context.Context, string) error { return nil })),
	}
	f.lobby = New(f.rooms, f.names, gen, append(base, opts...)...)
	return f
}

func lastToast(t *testing.T, l *Lobby) Toast {
	t.Helper()
	active := l.Toaster().Active()
	require.NotEmpty(t, active)
	return active[len(active)-1]
}

func TestNew_DefaultsToGuest(t *testing.T) {
	f := newFixture(t)

	user := f.lobby.CurrentUser()
	assert.Equal(t, "Guest", user.Username)
	assert.NotEmpty(t, user.ID)
	_, inRoom := f.lobby.CurrentRoom()
	assert.False(t, inRoom)
}

func TestNew_LoadsPersistedName(t *testing.T) {
	gen, err := generator.NewGenerator()
	require.NoError(t, err)

	l := New(repository.NewRoomRepository(), settings.NewMemoryStore("Alice"), gen)
	assert.Equal(t, "Alice", l.CurrentUser().Username)
}

func TestSetDisplayName(t *testing.T) {
	ctx := context.Background()

	t.Run("trims, persists and toasts", func(t *testing.T) {
		f := newFixture(t)

		require.NoError(t, f.lobby.SetDisplayName(ctx, "  Alice  "))

		assert.Equal(t, "Alice", f.lobby.CurrentUser().Username)
		stored, ok := f.names.LoadUsername()
		assert.True(t, ok)
		assert.Equal(t, "Alice", stored)

		toast := lastToast(t, f.lobby)
		assert.Equal(t, SeveritySuccess, toast.Severity)
		assert.Equal(t, "Username updated!", toast.Text)
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.lobby.SetDisplayName(ctx, "éé"))
		assert.Equal(t, "éé", f.lobby.CurrentUser().Username)
	})

	for _, name := range []string{"", "   ", "a", "  b  ", "é"} {
		t.Run("rejects "+name, func(t *testing.T) {
			f := newFixture(t)
			require.NoError(t, f.lobby.SetDisplayName(ctx, "Alice"))

			err := f.lobby.SetDisplayName(ctx, name)

			assert.ErrorIs(t, err, domain.ErrInvalidUsername)
			assert.Equal(t, "Alice", f.lobby.CurrentUser().Username)
			stored, _ := f.names.LoadUsername()
			assert.Equal(t, "Alice", stored)

			toast := lastToast(t, f.lobby)
			assert.Equal(t, SeverityError, toast.Severity)
			assert.Equal(t, "Username must be at least 2 characters long", toast.Text)
		})
	}

	t.Run("keeps the old name when saving fails", func(t *testing.T) {
		gen, err := generator.NewGenerator()
		require.NoError(t, err)
		l := New(repository.NewRoomRepository(), failingStore{}, gen)

		err = l.SetDisplayName(ctx, "Alice")

		assert.ErrorIs(t, err, domain.ErrNameNotPersisted)
		assert.Equal(t, "Guest", l.CurrentUser().Username)
	})
}

func TestCreateRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("creator is host and sole participant", func(t *testing.T) {
		rec := &countingRecorder{}
		f := newFixture(t, WithRecorder(rec))

		room, err := f.lobby.CreateRoom(ctx, "  Book Club ", "public")
		require.NoError(t, err)

		user := f.lobby.CurrentUser()
		assert.Equal(t, "Book Club", room.Name)
		assert.Equal(t, domain.PrivacyPublic, room.Privacy)
		assert.Regexp(t, codePattern, room.Code)
		assert.Equal(t, user.ID, room.HostID)
		assert.Equal(t, 1, room.ParticipantCount)
		assert.Equal(t, []UserView{user}, room.Participants)
		assert.Empty(t, room.Messages)

		current, ok := f.lobby.CurrentRoom()
		require.True(t, ok)
		assert.Equal(t, room.ID, current.ID)

		stored, err := f.rooms.GetByCode(ctx, room.Code)
		require.NoError(t, err)
		assert.Equal(t, room.ID, stored.ID)

		assert.Equal(t, `Public room "Book Club" created!`, lastToast(t, f.lobby).Text)
		assert.Equal(t, 1, rec.created)
	})

	t.Run("private room toast", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.lobby.CreateRoom(ctx, "Secret", "private")
		require.NoError(t, err)
		assert.Equal(t, `Private room "Secret" created!`, lastToast(t, f.lobby).Text)
	})

	t.Run("rejects a blank name", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.lobby.CreateRoom(ctx, "   ", "public")

		assert.ErrorIs(t, err, domain.ErrEmptyRoomName)
		rooms, _ := f.rooms.List(ctx)
		assert.Empty(t, rooms)
		_, inRoom := f.lobby.CurrentRoom()
		assert.False(t, inRoom)
		assert.Equal(t, "Please enter a room name", lastToast(t, f.lobby).Text)
	})

	t.Run("rejects an unknown privacy", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.lobby.CreateRoom(ctx, "Room", "secret")

		assert.ErrorIs(t, err, domain.ErrInvalidPrivacy)
		rooms, _ := f.rooms.List(ctx)
		assert.Empty(t, rooms)
	})
}

func TestLeave_DeletesEmptyRoom(t *testing.T) {
	ctx := context.Background()
	rec := &countingRecorder{}
	f := newFixture(t, WithRecorder(rec))

	room, err := f.lobby.CreateRoom(ctx, "Lonely", "public")
	require.NoError(t, err)

	require.NoError(t, f.lobby.Leave(ctx))

	_, inRoom := f.lobby.CurrentRoom()
	assert.False(t, inRoom)
	_, err = f.rooms.GetByID(ctx, room.ID)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
	assert.Equal(t, 1, rec.deleted)

	toast := lastToast(t, f.lobby)
	assert.Equal(t, SeverityInfo, toast.Severity)
	assert.Equal(t, "Left the room", toast.Text)

	_, err = f.lobby.JoinByCode(ctx, room.Code)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestLeave_OutsideRoomIsNoop(t *testing.T) {
	f := newFixture(t)

	err := f.lobby.Leave(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotInRoom)
	assert.Empty(t, f.lobby.Toaster().Active())
}

func TestPrivateRooms_HiddenButJoinableByCode(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

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
		require.NoError(t, f.rooms.Create(ctx, room))
	}

	listed, err := f.lobby.PublicRooms(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "Open", listed[0].Name)
	assert.Equal(t, "Also Open", listed[1].Name)

	room, err := f.lobby.JoinByCode(ctx, "  keep01 ")
	require.NoError(t, err)
	assert.Equal(t, "r2", room.ID)
	assert.Equal(t, 2, room.ParticipantCount)
	assert.Equal(t, "Bob", room.HostName)
	assert.Equal(t, `Joined private room "Kept"`, lastToast(t, f.lobby).Text)
}

func TestEnteringAnotherRoomLeavesTheFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.lobby.CreateRoom(ctx, "First", "public")
	require.NoError(t, err)
	second, err := f.lobby.CreateRoom(ctx, "Second", "private")
	require.NoError(t, err)

	_, err = f.rooms.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)

	current, ok := f.lobby.CurrentRoom()
	require.True(t, ok)
	assert.Equal(t, second.ID, current.ID)

	listed, err := f.lobby.PublicRooms(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestJoinByCode_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	room, err := f.lobby.CreateRoom(ctx, "Home", "public")
	require.NoError(t, err)

	_, err = f.lobby.JoinByCode(ctx, "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyRoomCode)
	assert.Equal(t, "Please enter a room code", lastToast(t, f.lobby).Text)

	_, err = f.lobby.JoinByCode(ctx, "ZZZZZZ")
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
	assert.Equal(t, "Room not found. Please check the room code.", lastToast(t, f.lobby).Text)

	current, ok := f.lobby.CurrentRoom()
	require.True(t, ok)
	assert.Equal(t, room.ID, current.ID)
	assert.Equal(t, 1, current.ParticipantCount)
}

func TestJoin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	host := domain.NewUser("host", "Bob")
	room, err := domain.NewRoom("r1", "ABC123", "Board Games", domain.PrivacyPublic, host, time.Now())
	require.NoError(t, err)
	room.AppendMessage(domain.Message{ID: "m1", Content: "hi", Username: "Bob", UserID: "host", IsOwn: true})
	require.NoError(t, f.rooms.Create(ctx, room))

	joined, err := f.lobby.Join(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 2, joined.ParticipantCount)
	require.Len(t, joined.Messages, 1)
	assert.False(t, joined.Messages[0].IsOwn)

	again, err := f.lobby.Join(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 2, again.ParticipantCount)

	require.NoError(t, f.lobby.Leave(ctx))
	stillThere, err := f.rooms.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Len(t, stillThere.Participants, 1)

	_, err = f.lobby.Join(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestSend(t *testing.T) {
	ctx := context.Background()

	t.Run("no room is a noop", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.lobby.Send(ctx, "hello")
		assert.ErrorIs(t, err, domain.ErrNotInRoom)
		assert.Empty(t, f.lobby.Toaster().Active())
	})

	t.Run("blank content is a noop", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.lobby.CreateRoom(ctx, "Room", "public")
		require.NoError(t, err)

		for _, content := range []string{"", "   ", "\n\t"} {
			_, err := f.lobby.Send(ctx, content)
			assert.ErrorIs(t, err, domain.ErrEmptyMessage)
		}
		room, _ := f.lobby.CurrentRoom()
		assert.Empty(t, room.Messages)
	})

	t.Run("author name is a snapshot", func(t *testing.T) {
		rec := &countingRecorder{}
		f := newFixture(t, WithRecorder(rec))
		require.NoError(t, f.lobby.SetDisplayName(ctx, "Alice"))
		_, err := f.lobby.CreateRoom(ctx, "Room", "public")
		require.NoError(t, err)

		msg, err := f.lobby.Send(ctx, "  <script>alert(1)</script>  ")
		require.NoError(t, err)
		assert.Equal(t, "<script>alert(1)</script>", msg.Content)

		require.NoError(t, f.lobby.SetDisplayName(ctx, "Alicia"))

		room, _ := f.lobby.CurrentRoom()
		require.Len(t, room.Messages, 1)
		assert.Equal(t, "Alice", room.Messages[0].Username)
		assert.True(t, room.Messages[0].IsOwn)
		assert.Equal(t, "Alicia", room.HostName)
		assert.Equal(t, 1, rec.sent)
	})
}

func TestCopyRoomCode(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		var copied string
		f := newFixture(t, WithClipboard(clipboard.Func(func(_ context.Context, text string) error {
			copied = text
			return nil
		})))
		room, err := f.lobby.CreateRoom(ctx, "Room", "public")
		require.NoError(t, err)

		require.NoError(t, <-f.lobby.CopyRoomCode(ctx))
		assert.Equal(t, room.Code, copied)
		assert.Equal(t, "Room code copied to clipboard!", lastToast(t, f.lobby).Text)
	})

	t.Run("failure", func(t *testing.T) {
		f := newFixture(t, WithClipboard(clipboard.Func(func(context.Context, string) error {
			return errors.New("no display")
		})))
		_, err := f.lobby.CreateRoom(ctx, "Room", "public")
		require.NoError(t, err)

		err = <-f.lobby.CopyRoomCode(ctx)
		assert.ErrorIs(t, err, domain.ErrClipboardWriteFailed)
		toast := lastToast(t, f.lobby)
		assert.Equal(t, SeverityError, toast.Severity)
		assert.Equal(t, "Failed to copy room code", toast.Text)
	})

	t.Run("outside a room", func(t *testing.T) {
		f := newFixture(t)
		assert.ErrorIs(t, <-f.lobby.CopyRoomCode(ctx), domain.ErrNotInRoom)
		assert.Empty(t, f.lobby.Toaster().Active())
	})
}

func TestState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.lobby.CreateRoom(ctx, "Open", "public")
	require.NoError(t, err)

	state, err := f.lobby.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Guest", state.User.Username)
	require.NotNil(t, state.CurrentRoom)
	assert.Equal(t, "Open", state.CurrentRoom.Name)
	require.Len(t, state.PublicRooms, 1)
	assert.Nil(t, state.PublicRooms[0].Messages)
	assert.Len(t, state.Toasts, 1)
}

func TestTriviaNight(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	room, err := f.lobby.CreateRoom(ctx, "Trivia Night", "public")
	require.NoError(t, err)
	assert.Equal(t, domain.PrivacyPublic, room.Privacy)
	assert.Equal(t, 1, room.ParticipantCount)
	assert.Regexp(t, codePattern, room.Code)

	_, err = f.lobby.Send(ctx, "hello")
	require.NoError(t, err)

	current, ok := f.lobby.CurrentRoom()
	require.True(t, ok)
	require.Len(t, current.Messages, 1)
	assert.Equal(t, "hello", current.Messages[0].Content)
	assert.True(t, current.Messages[0].IsOwn)

	require.NoError(t, f.lobby.Leave(ctx))
	_, err = f.rooms.GetByID(ctx, room.ID)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)

	_, err = f.lobby.JoinByCode(ctx, room.Code)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}
