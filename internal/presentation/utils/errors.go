package utils

import (
	"errors"
	"net/http"

	"github.com/hilthontt/chatlobby/internal/domain"
	"github.com/hilthontt/chatlobby/internal/infrastructure/json"
)

// StatusFor maps lobby errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidUsername),
		errors.Is(err, domain.ErrEmptyRoomName),
		errors.Is(err, domain.ErrEmptyRoomCode),
		errors.Is(err, domain.ErrInvalidPrivacy),
		errors.Is(err, domain.ErrEmptyMessage),
		errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotInRoom):
		return http.StatusConflict
	case errors.Is(err, domain.ErrClipboardWriteFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func WriteLobbyError(w http.ResponseWriter, err error) {
	switch status := StatusFor(err); status {
	case http.StatusBadRequest:
		json.WriteBadRequestError(w, err.Error())
	case http.StatusNotFound:
		json.WriteNotFoundError(w, err.Error())
	case http.StatusInternalServerError:
		json.WriteInternalError(w)
	default:
		json.WriteError(w, status, err.Error())
	}
}
