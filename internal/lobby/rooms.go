package lobby

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hilthontt/chatlobby/internal/domain"
	"github.com/hilthontt/chatlobby/internal/infrastructure/logging"
	"github.com/hilthontt/chatlobby/internal/infrastructure/validate"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	roomNameValidator = validate.Field("name", validate.Required())
	roomCodeValidator = validate.Field("code", validate.Required())
)

func normalizeCode(code string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(code))
}

func privacyLabel(p domain.Privacy) string {
	return cases.Title(language.English).String(string(p))
}

// CreateRoom makes the session user host and sole participant of a new room
// and moves them into it.
func (l *Lobby) CreateRoom(ctx context.Context, name, privacy string) (RoomView, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ctx, span := l.startSpan(ctx, "CreateRoom")
	defer span.End()

	name = strings.TrimSpace(name)
	if err := roomNameValidator(name); err != nil {
		l.toast(SeverityError, "Please enter a room name")
		return RoomView{}, domain.ErrEmptyRoomName
	}
	p, err := domain.ParsePrivacy(privacy)
	if err != nil {
		l.toast(SeverityError, "Please choose public or private")
		return RoomView{}, err
	}

	room, err := domain.NewRoom(l.ids.NewID(), l.ids.NewRoomCode(), name, p, l.user, l.now())
	if err != nil {
		return RoomView{}, err
	}
	if err := l.rooms.Create(ctx, room); err != nil {
		span.RecordError(err)
		return RoomView{}, fmt.Errorf("create room: %w", err)
	}
	l.recorder.RoomCreated(p)

	l.logger.Info(logging.Lobby, logging.Rooms, "room created", map[logging.ExtraKey]any{
		logging.RoomID:   room.ID,
		logging.RoomCode: room.Code,
		logging.UserID:   l.user.ID,
	})

	if err := l.enterLocked(ctx, room); err != nil {
		return RoomView{}, err
	}
	l.toast(SeveritySuccess, fmt.Sprintf("%s room %q created!", privacyLabel(p), room.Name))

	return roomView(room, l.user.ID, true), nil
}

// Join enters a room by ID, as offered by the public room listing.
func (l *Lobby) Join(ctx context.Context, roomID string) (RoomView, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ctx, span := l.startSpan(ctx, "Join")
	defer span.End()

	room, err := l.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) || errors.Is(err, domain.ErrInvalidInput) {
			l.toast(SeverityError, "Room not found")
			return RoomView{}, domain.ErrRoomNotFound
		}
		return RoomView{}, err
	}

	if err := l.enterLocked(ctx, room); err != nil {
		return RoomView{}, err
	}
	return roomView(room, l.user.ID, true), nil
}

// JoinByCode looks a room up by its code, case-insensitively, across public
// and private rooms alike.
func (l *Lobby) JoinByCode(ctx context.Context, code string) (RoomView, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ctx, span := l.startSpan(ctx, "JoinByCode")
	defer span.End()

	code = normalizeCode(code)
	if err := roomCodeValidator(code); err != nil {
		l.toast(SeverityError, "Please enter a room code")
		return RoomView{}, domain.ErrEmptyRoomCode
	}

	room, err := l.rooms.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			l.toast(SeverityError, "Room not found. Please check the room code.")
		}
		return RoomView{}, err
	}

	if err := l.enterLocked(ctx, room); err != nil {
		return RoomView{}, err
	}
	l.toast(SeveritySuccess, fmt.Sprintf("Joined %s room %q", room.Privacy, room.Name))

	return roomView(room, l.user.ID, true), nil
}

// Leave removes the session user from the current room, deleting the room
// once nobody is left in it.
func (l *Lobby) Leave(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ctx, span := l.startSpan(ctx, "Leave")
	defer span.End()

	if l.current == nil {
		return domain.ErrNotInRoom
	}
	if err := l.leaveLocked(ctx); err != nil {
		return err
	}
	l.toast(SeverityInfo, "Left the room")
	return nil
}

// PublicRooms lists public rooms in creation order.
func (l *Lobby) PublicRooms(ctx context.Context) ([]RoomView, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.publicRoomsLocked(ctx)
}

func (l *Lobby) publicRoomsLocked(ctx context.Context) ([]RoomView, error) {
	rooms, err := l.rooms.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]RoomView, 0, len(rooms))
	for _, r := range rooms {
		if r.Privacy.IsPrivate() {
			continue
		}
		out = append(out, roomView(r, l.user.ID, false))
	}
	return out, nil
}

// enterLocked makes room current. Entering a different room first leaves the
// current one so the user is never a participant of two rooms.
func (l *Lobby) enterLocked(ctx context.Context, room *domain.Room) error {
	if l.current != nil && l.current.ID != room.ID {
		if err := l.leaveLocked(ctx); err != nil {
			return err
		}
	}

	room.AddParticipant(l.user)
	l.current = room

	l.logger.Info(logging.Lobby, logging.Rooms, "joined room", map[logging.ExtraKey]any{
		logging.RoomID: room.ID,
		logging.UserID: l.user.ID,
	})
	return nil
}

func (l *Lobby) leaveLocked(ctx context.Context) error {
	room := l.current
	room.RemoveParticipant(l.user.ID)
	l.current = nil

	if room.IsEmpty() {
		if err := l.rooms.Delete(ctx, room); err != nil && !errors.Is(err, domain.ErrRoomNotFound) {
			return fmt.Errorf("delete room: %w", err)
		}
		l.recorder.RoomDeleted()
		l.logger.Info(logging.Lobby, logging.Rooms, "room deleted", map[logging.ExtraKey]any{
			logging.RoomID: room.ID,
		})
	}
	return nil
}
