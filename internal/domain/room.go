package domain

import (
	"context"
	"strings"
	"time"
)

type Privacy string

const (
	PrivacyPublic  Privacy = "public"
	PrivacyPrivate Privacy = "private"
)

func ParsePrivacy(s string) (Privacy, error) {
	switch Privacy(strings.ToLower(strings.TrimSpace(s))) {
	case PrivacyPublic:
		return PrivacyPublic, nil
	case PrivacyPrivate:
		return PrivacyPrivate, nil
	}
	return "", ErrInvalidPrivacy
}

func (p Privacy) IsPrivate() bool {
	return p == PrivacyPrivate
}

// CodeLength is the number of characters in a room code.
const CodeLength = 6

type Room struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Code         string       `json:"code"`
	Privacy      Privacy      `json:"privacy"`
	Host         *User        `json:"host"`
	Participants Participants `json:"participants"`
	Messages     []Message    `json:"messages"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// NewRoom builds a room hosted by host, who is also its only participant.
func NewRoom(id, code, name string, privacy Privacy, host *User, now time.Time) (*Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyRoomName
	}
	if privacy != PrivacyPublic && privacy != PrivacyPrivate {
		return nil, ErrInvalidPrivacy
	}
	if host == nil || id == "" || code == "" {
		return nil, ErrInvalidInput
	}

	return &Room{
		ID:           id,
		Name:         name,
		Code:         code,
		Privacy:      privacy,
		Host:         host,
		Participants: Participants{host},
		Messages:     []Message{},
		CreatedAt:    now,
	}, nil
}

// AddParticipant is idempotent by user ID.
func (r *Room) AddParticipant(u *User) bool {
	var added bool
	r.Participants, added = r.Participants.Add(u)
	return added
}

func (r *Room) RemoveParticipant(userID string) bool {
	var removed bool
	r.Participants, removed = r.Participants.Remove(userID)
	return removed
}

func (r *Room) IsEmpty() bool {
	return len(r.Participants) == 0
}

func (r *Room) AppendMessage(m Message) {
	r.Messages = append(r.Messages, m)
}

type RoomRepository interface {
	Create(ctx context.Context, room *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	GetByCode(ctx context.Context, code string) (*Room, error)
	Delete(ctx context.Context, room *Room) error
	List(ctx context.Context) ([]*Room, error)
}

// NameStore persists the display name across restarts.
type NameStore interface {
	LoadUsername() (string, bool)
	SaveUsername(name string) error
}
