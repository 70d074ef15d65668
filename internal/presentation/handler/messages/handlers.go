package messages

import (
	"context"
	"net/http"

	"github.com/hilthontt/chatlobby/internal/infrastructure/json"
	"github.com/hilthontt/chatlobby/internal/lobby"
	"github.com/hilthontt/chatlobby/internal/presentation/utils"
)

type Lobby interface {
	Send(ctx context.Context, content string) (lobby.MessageView, error)
}

type Handler struct {
	lobby Lobby
}

func NewHandler(l Lobby) *Handler {
	return &Handler{lobby: l}
}

// SendMessageHandler appends a message to the current room. From the page,
// blank messages are silently ignored and the browser lands on the newest
// message either way.
func (h *Handler) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	err := utils.ReadInput(w, r, &req, func(get func(string) string) {
		req.Content = get("content")
	})
	if err != nil {
		json.WriteBadRequestError(w, err.Error())
		return
	}

	msg, err := h.lobby.Send(r.Context(), req.Content)

	if !utils.WantsJSON(r) {
		utils.RedirectHome(w, r, "latest")
		return
	}
	if err != nil {
		utils.WriteLobbyError(w, err)
		return
	}
	_ = json.Write(w, http.StatusCreated, msg)
}
