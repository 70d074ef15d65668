package lobby

import (
	"context"

	"github.com/hilthontt/chatlobby/internal/domain"
	"github.com/hilthontt/chatlobby/internal/infrastructure/logging"
)

// Send appends a message from the session user to the current room. Blank
// content and sending outside a room change nothing and show no toast.
func (l *Lobby) Send(ctx context.Context, content string) (MessageView, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, span := l.startSpan(ctx, "Send")
	defer span.End()

	if l.current == nil {
		return MessageView{}, domain.ErrNotInRoom
	}

	msg, err := domain.NewMessage(l.ids.NewID(), l.user, content, l.now())
	if err != nil {
		return MessageView{}, err
	}

	l.current.AppendMessage(*msg)
	l.recorder.MessageSent()
	l.logger.Debug(logging.Lobby, logging.Messaging, "message sent", map[logging.ExtraKey]any{
		logging.RoomID: l.current.ID,
		logging.UserID: l.user.ID,
	})

	return messageView(*msg, l.user.ID), nil
}
