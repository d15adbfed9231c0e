package ws

import (
	"log"
	"net/http"
	"sync"

	"kiosk/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// SessionHub fans session snapshots out to the displays watching them.
// A kiosk normally has one subscriber per session (its own screen), but
// the staff tablet may watch too.
type SessionHub struct {
	clients    map[string]map[*websocket.Conn]bool // sessionID -> conns
	broadcast  chan update
	register   chan subscription
	unregister chan subscription
	mu         sync.Mutex
	registry   *services.SessionRegistry
}

type subscription struct {
	Conn      *websocket.Conn
	SessionID string
}

type update struct {
	SessionID string
	Snapshot  services.Snapshot
}

func NewSessionHub(registry *services.SessionRegistry) *SessionHub {
	return &SessionHub{
		clients:    make(map[string]map[*websocket.Conn]bool),
		broadcast:  make(chan update, 16),
		register:   make(chan subscription),
		unregister: make(chan subscription),
		registry:   registry,
	}
}

// Publish implements services.Notifier: called by the session after
// every state change.
func (h *SessionHub) Publish(sessionID string, snap services.Snapshot) {
	h.broadcast <- update{SessionID: sessionID, Snapshot: snap}
}

func (h *SessionHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.SessionID] == nil {
				h.clients[sub.SessionID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.SessionID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.SessionID][sub.Conn]; ok {
				delete(h.clients[sub.SessionID], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case u := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[u.SessionID] {
				if err := conn.WriteJSON(u.Snapshot); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients[u.SessionID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/sessions/:id
func (h *SessionHub) HandleWebSocket(c *gin.Context) {
	sessionID := c.Param("id")
	session, err := h.registry.Get(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "session not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	sub := subscription{Conn: conn, SessionID: sessionID}
	h.register <- sub

	// Current state right away so the display never renders blind.
	if err := conn.WriteJSON(session.Snapshot()); err != nil {
		h.unregister <- sub
		return
	}

	// Reader loop exists only to notice the peer going away.
	go func() {
		defer func() { h.unregister <- sub }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
