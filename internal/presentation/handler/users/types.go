package users

type setUsernameRequest struct {
	Username string `json:"username"`
}
