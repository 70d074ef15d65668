package rooms

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hilthontt/chatlobby/internal/domain"
	"github.com/hilthontt/chatlobby/internal/infrastructure/json"
	"github.com/hilthontt/chatlobby/internal/lobby"
	"github.com/hilthontt/chatlobby/internal/presentation/utils"
	"github.com/hilthontt/chatlobby/internal/presentation/views"
)

type Lobby interface {
	CreateRoom(ctx context.Context, name, privacy string) (lobby.RoomView, error)
	Join(ctx context.Context, roomID string) (lobby.RoomView, error)
	JoinByCode(ctx context.Context, code string) (lobby.RoomView, error)
	Leave(ctx context.Context) error
	CopyRoomCode(ctx context.Context) <-chan error
}

type Handler struct {
	lobby       Lobby
	copyTimeout time.Duration
}

func NewHandler(l Lobby, copyTimeout time.Duration) *Handler {
	if copyTimeout <= 0 {
		copyTimeout = 2 * time.Second
	}
	return &Handler{
		lobby:       l,
		copyTimeout: copyTimeout,
	}
}

func (h *Handler) CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	err := utils.ReadInput(w, r, &req, func(get func(string) string) {
		req.Name = get("name")
		req.Privacy = get("privacy")
	})
	if err != nil {
		json.WriteBadRequestError(w, err.Error())
		return
	}
	if req.Privacy == "" {
		req.Privacy = string(domain.PrivacyPublic)
	}

	room, err := h.lobby.CreateRoom(r.Context(), req.Name, req.Privacy)
	if !utils.WantsJSON(r) && (errors.Is(err, domain.ErrEmptyRoomName) || errors.Is(err, domain.ErrInvalidPrivacy)) {
		utils.RedirectToModal(w, r, string(views.ModalCreateRoom))
		return
	}
	h.respondRoom(w, r, http.StatusCreated, room, err)
}

// JoinRoomHandler serves the room cards, which post to the ID they were
// rendered with.
func (h *Handler) JoinRoomHandler(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomId")

	room, err := h.lobby.Join(r.Context(), roomID)
	h.respondRoom(w, r, http.StatusOK, room, err)
}

func (h *Handler) JoinByCodeHandler(w http.ResponseWriter, r *http.Request) {
	var req joinByCodeRequest
	err := utils.ReadInput(w, r, &req, func(get func(string) string) {
		req.Code = get("code")
	})
	if err != nil {
		json.WriteBadRequestError(w, err.Error())
		return
	}

	room, err := h.lobby.JoinByCode(r.Context(), req.Code)
	h.respondRoom(w, r, http.StatusOK, room, err)
}

func (h *Handler) LeaveRoomHandler(w http.ResponseWriter, r *http.Request) {
	err := h.lobby.Leave(r.Context())

	if !utils.WantsJSON(r) {
		utils.RedirectHome(w, r, "")
		return
	}
	if err != nil {
		utils.WriteLobbyError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CopyCodeHandler waits for the clipboard write so the resulting toast is
// already active when the redirected page renders.
func (h *Handler) CopyCodeHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), h.copyTimeout)
	defer cancel()

	var err error
	select {
	case err = <-h.lobby.CopyRoomCode(ctx):
	case <-ctx.Done():
		err = ctx.Err()
	}

	if !utils.WantsJSON(r) {
		utils.RedirectHome(w, r, "")
		return
	}
	if err != nil {
		utils.WriteLobbyError(w, err)
		return
	}
	_ = json.Write(w, http.StatusOK, copyCodeResponse{Copied: true})
}

func (h *Handler) respondRoom(w http.ResponseWriter, r *http.Request, status int, room lobby.RoomView, err error) {
	if !utils.WantsJSON(r) {
		anchor := ""
		if err == nil {
			anchor = "latest"
		}
		utils.RedirectHome(w, r, anchor)
		return
	}
	if err != nil {
		utils.WriteLobbyError(w, err)
		return
	}
	_ = json.Write(w, status, room)
}
