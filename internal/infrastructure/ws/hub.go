package ws

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/hilthontt/chatlobby/internal/infrastructure/logging"
)

// Hub fans lobby events out to every open page. The client set is owned by
// the Run goroutine; everything else talks to it over channels.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan *WSMessage
	done       chan struct{}
	count      atomic.Int64

	upgrader websocket.Upgrader
	logger   logging.Logger
}

// NewHub builds a hub. checkOrigin may be nil, in which case gorilla's
// same-origin check applies.
func NewHub(logger logging.Logger, checkOrigin func(r *http.Request) bool) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *WSMessage, 256),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		logger: logger,
	}
}

// Run serves registrations and broadcasts until ctx is cancelled, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		for id, cl := range h.clients {
			close(cl.Message)
			delete(h.clients, id)
		}
		h.count.Store(0)
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case cl := <-h.register:
			h.clients[cl.ID] = cl
			h.count.Add(1)
			h.logger.Debug(logging.Websocket, logging.Connection, "client connected", map[logging.ExtraKey]any{
				logging.ClientID: cl.ID,
			})

		case cl := <-h.unregister:
			if _, ok := h.clients[cl.ID]; ok {
				delete(h.clients, cl.ID)
				close(cl.Message)
				h.count.Add(-1)
				h.logger.Debug(logging.Websocket, logging.Connection, "client disconnected", map[logging.ExtraKey]any{
					logging.ClientID: cl.ID,
				})
			}

		case msg := <-h.broadcast:
			for _, cl := range h.clients {
				select {
				case cl.Message <- msg:
				default:
					h.logger.Warn(logging.Websocket, logging.Broadcast, "client buffer full, dropping message", map[logging.ExtraKey]any{
						logging.ClientID:  cl.ID,
						logging.EventType: msg.Type,
					})
				}
			}
		}
	}
}

// Broadcast queues msg for every connected client without blocking. Messages
// are dropped once the hub has stopped or its queue is full.
func (h *Hub) Broadcast(msg *WSMessage) {
	select {
	case h.broadcast <- msg:
	case <-h.done:
	default:
		h.logger.Warn(logging.Websocket, logging.Broadcast, "broadcast queue full, dropping message", map[logging.ExtraKey]any{
			logging.EventType: msg.Type,
		})
	}
}

func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// ServeHTTP upgrades the request and attaches the connection to the hub.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn(logging.Websocket, logging.Connection, "upgrade failed", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
		return
	}

	client := NewClient(conn, uuid.NewString())

	select {
	case h.register <- client:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go client.WriteMessage(h)
	go client.ReadMessage(h)
}

func (h *Hub) unregisterClient(cl *Client) {
	select {
	case h.unregister <- cl:
	case <-h.done:
	}
}
