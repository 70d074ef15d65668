package pages

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/hilthontt/chatlobby/internal/infrastructure/json"
	"github.com/hilthontt/chatlobby/internal/infrastructure/logging"
	"github.com/hilthontt/chatlobby/internal/lobby"
	"github.com/hilthontt/chatlobby/internal/presentation/views"
)

type Lobby interface {
	State(ctx context.Context) (lobby.State, error)
}

type Handler struct {
	lobby    Lobby
	renderer *views.Renderer
	logger   logging.Logger
	now      func() time.Time

	// greeted flips on the first page view, which opens the display name
	// dialog the way a fresh session does.
	greeted atomic.Bool
}

func NewHandler(l Lobby, renderer *views.Renderer, logger logging.Logger) *Handler {
	return &Handler{
		lobby:    l,
		renderer: renderer,
		logger:   logger,
		now:      time.Now,
	}
}

func (h *Handler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	state, err := h.lobby.State(r.Context())
	if err != nil {
		h.logger.Error(logging.RequestResponse, logging.Rooms, "failed to load lobby state", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	page := views.Page{
		State: state,
		Now:   h.now(),
		Modal: requestedModal(r, state),
	}
	if h.greeted.CompareAndSwap(false, true) && page.Modal == views.ModalNone && state.CurrentRoom == nil {
		page.Modal = views.ModalUsername
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := h.renderer.Render(w, page); err != nil {
		h.logger.Error(logging.RequestResponse, logging.Rooms, "failed to render page", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// StateHandler exposes the same snapshot the page is rendered from.
func (h *Handler) StateHandler(w http.ResponseWriter, r *http.Request) {
	state, err := h.lobby.State(r.Context())
	if err != nil {
		json.WriteInternalError(w)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	_ = json.Write(w, http.StatusOK, state)
}

func requestedModal(r *http.Request, state lobby.State) views.Modal {
	switch m := views.Modal(r.URL.Query().Get("modal")); m {
	case views.ModalUsername:
		return m
	case views.ModalCreateRoom:
		if state.CurrentRoom == nil {
			return m
		}
	}
	return views.ModalNone
}
