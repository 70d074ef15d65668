package domain

import "strings"

// DefaultUsername is the display name a session starts with before a
// persisted one is loaded.
const DefaultUsername = "Guest"

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func NewUser(id, username string) *User {
	if strings.TrimSpace(username) == "" {
		username = DefaultUsername
	}
	return &User{
		ID:       id,
		Username: username,
	}
}
