package lobby

import (
	"context"
	"fmt"

	"github.com/hilthontt/chatlobby/internal/domain"
	"github.com/hilthontt/chatlobby/internal/infrastructure/logging"
)

// CopyRoomCode writes the current room's code to the clipboard in the
// background. The outcome is shown as a toast and delivered once on the
// returned channel. Outside a room the channel carries ErrNotInRoom and no
// toast is shown.
func (l *Lobby) CopyRoomCode(ctx context.Context) <-chan error {
	result := make(chan error, 1)

	l.mu.Lock()
	var code, roomID string
	if l.current != nil {
		code, roomID = l.current.Code, l.current.ID
	}
	l.mu.Unlock()

	if code == "" {
		result <- domain.ErrNotInRoom
		close(result)
		return result
	}

	go func() {
		defer close(result)

		ctx, span := l.tracer.Start(ctx, "lobby.CopyRoomCode")
		defer span.End()

		if err := l.clipboard.WriteText(ctx, code); err != nil {
			span.RecordError(err)
			l.logger.Warn(logging.Lobby, logging.Clipboard, "failed to copy room code", map[logging.ExtraKey]any{
				logging.RoomID:       roomID,
				logging.ErrorMessage: err.Error(),
			})
			l.toast(SeverityError, "Failed to copy room code")
			result <- fmt.Errorf("%w: %v", domain.ErrClipboardWriteFailed, err)
			return
		}

		l.toast(SeveritySuccess, "Room code copied to clipboard!")
		result <- nil
	}()

	return result
}
