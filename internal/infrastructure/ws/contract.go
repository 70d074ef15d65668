package ws

type WSMessage struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

func NewEvent(eventType string, data any) *WSMessage {
	return &WSMessage{
		Type: eventType,
		Data: data,
	}
}
