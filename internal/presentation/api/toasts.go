package api

import (
	"context"

	"github.com/hilthontt/chatlobby/internal/infrastructure/logging"
	"github.com/hilthontt/chatlobby/internal/infrastructure/ws"
	"github.com/hilthontt/chatlobby/internal/lobby"
)

// StreamToasts forwards toast transitions to every open page until ctx is
// cancelled.
func (app *Application) StreamToasts(ctx context.Context, toaster *lobby.Toaster) {
	events, unsubscribe := toaster.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			name := toastEventName(ev.Type)
			app.logger.Debug(logging.Websocket, logging.Toasts, "toast event", map[logging.ExtraKey]any{
				logging.EventType: name,
				logging.Severity:  string(ev.Toast.Severity),
			})
			app.hub.Broadcast(ws.NewEvent(name, ev.Toast))
		}
	}
}

func toastEventName(t lobby.ToastEventType) string {
	switch t {
	case lobby.ToastShown:
		return ws.ToastShownEvent
	case lobby.ToastFading:
		return ws.ToastFadingEvent
	default:
		return ws.ToastDismissedEvent
	}
}
