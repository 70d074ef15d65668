package domain

import (
	"strings"
	"time"
)

// Message is immutable once created. Username is a snapshot of the author's
// display name at send time.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Username  string    `json:"username"`
	UserID    string    `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
	IsOwn     bool      `json:"isOwn"`
}

func NewMessage(id string, author *User, content string, now time.Time) (*Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	if author == nil {
		return nil, ErrInvalidInput
	}

	return &Message{
		ID:        id,
		Content:   content,
		Username:  author.Username,
		UserID:    author.ID,
		Timestamp: now,
		IsOwn:     true,
	}, nil
}

// OwnedBy reports whether the message was authored by the given viewer.
func (m Message) OwnedBy(viewerID string) bool {
	return m.UserID == viewerID
}
