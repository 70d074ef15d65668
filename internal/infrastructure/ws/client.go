package ws

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/hilthontt/chatlobby/internal/infrastructure/logging"
)

const (
	clientBuffer = 64
	writeWait    = 10 * time.Second
)

type Client struct {
	conn    *connWrapper
	Message chan *WSMessage
	ID      string `json:"id"`
}

func NewClient(conn *websocket.Conn, id string) *Client {
	return &Client{
		conn:    newConnWrapper(conn),
		Message: make(chan *WSMessage, clientBuffer), // buffered so a slow page cannot stall the hub
		ID:      id,
	}
}

// ReadMessage drains the connection until the page goes away. Pages never
// send anything meaningful; reading is how close frames are noticed.
func (c *Client) ReadMessage(hub *Hub) {
	defer func() {
		hub.unregisterClient(c)
		_ = c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				hub.logger.Warn(logging.Websocket, logging.Connection, "read error", map[logging.ExtraKey]any{
					logging.ClientID:     c.ID,
					logging.ErrorMessage: err.Error(),
				})
			}
			return
		}
	}
}

func (c *Client) WriteMessage(hub *Hub) {
	defer func() {
		_ = c.conn.Close()
	}()

	for msg := range c.Message {
		if err := c.conn.WriteJSON(msg, writeWait); err != nil {
			hub.logger.Warn(logging.Websocket, logging.Connection, "write error", map[logging.ExtraKey]any{
				logging.ClientID:     c.ID,
				logging.ErrorMessage: err.Error(),
			})
			return
		}
	}
	_ = c.conn.WriteClose()
}
