package messages

type sendMessageRequest struct {
	Content string `json:"content"`
}
