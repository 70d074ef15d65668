package lobby

import (
	"time"

	"github.com/hilthontt/chatlobby/internal/domain"
)

// The view types are detached copies of controller state; front ends may
// hold on to them after the lock is released.

type UserView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type MessageView struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Username  string    `json:"username"`
	UserID    string    `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
	IsOwn     bool      `json:"isOwn"`
}

type RoomView struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Code             string         `json:"code"`
	Privacy          domain.Privacy `json:"privacy"`
	HostID           string         `json:"hostId"`
	HostName         string         `json:"hostName"`
	ParticipantCount int            `json:"participantCount"`
	Participants     []UserView     `json:"participants"`
	Messages         []MessageView  `json:"messages,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
}

type State struct {
	User        UserView   `json:"user"`
	CurrentRoom *RoomView  `json:"currentRoom"`
	PublicRooms []RoomView `json:"publicRooms"`
	Toasts      []Toast    `json:"toasts"`
}

func userView(u *domain.User) UserView {
	return UserView{ID: u.ID, Username: u.Username}
}

func messageView(m domain.Message, viewerID string) MessageView {
	return MessageView{
		ID:        m.ID,
		Content:   m.Content,
		Username:  m.Username,
		UserID:    m.UserID,
		Timestamp: m.Timestamp,
		IsOwn:     m.OwnedBy(viewerID),
	}
}

func roomView(r *domain.Room, viewerID string, withMessages bool) RoomView {
	rv := RoomView{
		ID:               r.ID,
		Name:             r.Name,
		Code:             r.Code,
		Privacy:          r.Privacy,
		ParticipantCount: len(r.Participants),
		Participants:     make([]UserView, 0, len(r.Participants)),
		CreatedAt:        r.CreatedAt,
	}
	if r.Host != nil {
		rv.HostID = r.Host.ID
		rv.HostName = r.Host.Username
	}
	for _, p := range r.Participants {
		rv.Participants = append(rv.Participants, userView(p))
	}
	if withMessages {
		rv.Messages = make([]MessageView, 0, len(r.Messages))
		for _, m := range r.Messages {
			rv.Messages = append(rv.Messages, messageView(m, viewerID))
		}
	}
	return rv
}
