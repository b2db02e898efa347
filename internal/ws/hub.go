package ws

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"vessel-alert-service/internal/models"
)

// Hub tracks live WebSocket connections per user and pushes in-app
// notifications to them as the dispatcher creates them.
type Hub struct {
	mu     sync.Mutex
	conns  map[uuid.UUID]map[*websocket.Conn]bool // userID -> set of connections
	logger *logrus.Logger
}

func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		conns:  make(map[uuid.UUID]map[*websocket.Conn]bool),
		logger: logger,
	}
}

func (h *Hub) Register(userID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*websocket.Conn]bool)
	}
	h.conns[userID][conn] = true
	h.logger.Debugf("WebSocket registered for user %s (%d active)", userID, len(h.conns[userID]))
}

func (h *Hub) Unregister(userID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns[userID], conn)
	if len(h.conns[userID]) == 0 {
		delete(h.conns, userID)
	}
}

// Push sends the notification to every live connection of the user. Broken
// connections are dropped. Best-effort: delivery to the database row is the
// durable path, the socket is a convenience.
func (h *Hub) Push(userID uuid.UUID, n models.Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns[userID] {
		if err := conn.WriteJSON(n); err != nil {
			h.logger.Warnf("WebSocket write to user %s failed, dropping connection: %v", userID, err)
			conn.Close()
			delete(h.conns[userID], conn)
		}
	}
	if len(h.conns[userID]) == 0 {
		delete(h.conns, userID)
	}
}
