// api/realtime/hub.go
package realtime

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	logger "github.com/fixhub-app/fixhub/api/logging"
)

// subscribeRequest is what clients send over the socket to pick tables.
// Table "*" subscribes to every resource.
type subscribeRequest struct {
	Action string `json:"action"` // "subscribe" or "unsubscribe"
	Table  string `json:"table"`
}

type wsClient struct {
	conn   *websocket.Conn
	mu     sync.Mutex // guards writes
	tables map[string]bool
}

func (c *wsClient) send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// Hub is the server side of the change feed: it fans change events out to
// websocket clients subscribed by table.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*wsClient]struct{}
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*wsClient]struct{}),
	}
}

// Attach subscribes the hub to the feed for each listed table so DAO
// mutations reach connected clients.
func (h *Hub) Attach(feed Feed, tables ...string) error {
	for _, table := range tables {
		if _, err := feed.Subscribe(table, h.Broadcast); err != nil {
			return err
		}
	}
	return nil
}

// ServeHTTP upgrades the request and pumps subscribe requests until the
// client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}

	client := &wsClient{conn: conn, tables: make(map[string]bool)}
	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, client)
		h.mu.Unlock()
		conn.Close()
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var req subscribeRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			continue
		}
		client.mu.Lock()
		switch req.Action {
		case "subscribe":
			client.tables[req.Table] = true
		case "unsubscribe":
			delete(client.tables, req.Table)
		}
		client.mu.Unlock()
	}
}

// Broadcast delivers a change event to every client subscribed to its table.
func (h *Hub) Broadcast(change ChangeEvent) {
	payload, err := json.Marshal(change)
	if err != nil {
		return
	}

	h.mu.Lock()
	clients := make([]*wsClient, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.Unlock()

	for _, client := range clients {
		client.mu.Lock()
		subscribed := client.tables[change.Table] || client.tables["*"]
		client.mu.Unlock()
		if !subscribed {
			continue
		}
		if err := client.send(payload); err != nil {
			logger.Debug("Dropping websocket client", zap.Error(err))
			h.mu.Lock()
			delete(h.clients, client)
			h.mu.Unlock()
		}
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
