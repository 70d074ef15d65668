package users

import (
	"context"
	"net/http"

	"github.com/hilthontt/chatlobby/internal/infrastructure/json"
	"github.com/hilthontt/chatlobby/internal/lobby"
	"github.com/hilthontt/chatlobby/internal/presentation/utils"
	"github.com/hilthontt/chatlobby/internal/presentation/views"
)

type Lobby interface {
	SetDisplayName(ctx context.Context, name string) error
	CurrentUser() lobby.UserView
}

type Handler struct {
	lobby Lobby
}

func NewHandler(l Lobby) *Handler {
	return &Handler{lobby: l}
}

func (h *Handler) SetUsernameHandler(w http.ResponseWriter, r *http.Request) {
	var req setUsernameRequest
	err := utils.ReadInput(w, r, &req, func(get func(string) string) {
		req.Username = get("username")
	})
	if err != nil {
		json.WriteBadRequestError(w, err.Error())
		return
	}

	err = h.lobby.SetDisplayName(r.Context(), req.Username)

	if !utils.WantsJSON(r) {
		// The dialog stays open until a name is accepted.
		if err != nil {
			utils.RedirectToModal(w, r, string(views.ModalUsername))
			return
		}
		utils.RedirectHome(w, r, "")
		return
	}
	if err != nil {
		utils.WriteLobbyError(w, err)
		return
	}
	_ = json.Write(w, http.StatusOK, h.lobby.CurrentUser())
}
