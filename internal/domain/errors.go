package domain

import "errors"

var (
	ErrInvalidUsername      = errors.New("username must be at least 2 characters long")
	ErrEmptyRoomName        = errors.New("room name is empty")
	ErrEmptyRoomCode        = errors.New("room code is empty")
	ErrRoomNotFound         = errors.New("room not found")
	ErrClipboardWriteFailed = errors.New("clipboard write failed")

	ErrInvalidPrivacy   = errors.New("invalid room privacy")
	ErrNameNotPersisted = errors.New("username could not be persisted")
	ErrNotInRoom        = errors.New("not in a room")
	ErrEmptyMessage     = errors.New("message is empty")
	ErrInvalidInput     = errors.New("invalid input")
)
