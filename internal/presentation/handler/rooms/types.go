package rooms

type createRoomRequest struct {
	Name    string `json:"name"`
	Privacy string `json:"privacy"`
}

type joinByCodeRequest struct {
	Code string `json:"code"`
}

type copyCodeResponse struct {
	Copied bool `json:"copied"`
}
