// Package livefeed pushes parsed ExecutionReport and market-data messages
// out to authenticated WebSocket subscribers, the same register/broadcast
// hub shape the teacher engine used for streaming ticks.
package livefeed

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/epic1st/fixengine/auth"
	"github.com/epic1st/fixengine/logging"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one authenticated WebSocket subscriber.
type Client struct {
	conn     *websocket.Conn
	send     chan []byte
	userID   string
	sessions map[string]bool // sessionIDs this client subscribes to, empty = all
}

// Event is one message pushed to subscribers: an ExecutionReport or
// market-data update, tagged with the FIX session it came from.
type Event struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId"`
	MsgType   string `json:"msgType"`
	Body      []byte `json:"body"`
}

// Hub maintains the set of connected clients and fans Events out to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
	authSvc    *auth.Service

	mu sync.RWMutex
}

// NewHub builds a Hub; callers must run Run in its own goroutine.
func NewHub(authSvc *auth.Service) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Event, 4096),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		authSvc:    authSvc,
	}
}

// Run drives the hub's register/unregister/broadcast loop until the
// process exits; callers invoke it with `go hub.Run()`.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			logging.Info("livefeed client connected", logging.Int("clients", count))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			logging.Info("livefeed client disconnected", logging.Int("clients", count))

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				logging.Error("livefeed: marshal event", err)
				continue
			}
			h.mu.RLock()
			for client := range h.clients {
				if len(client.sessions) > 0 && !client.sessions[event.SessionID] {
					continue
				}
				select {
				case client.send <- data:
				default:
					// slow subscriber, drop rather than block the hub
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Publish enqueues an Event for broadcast; it never blocks the caller —
// a full buffer drops the event rather than stalling the parsing path.
func (h *Hub) Publish(event Event) {
	select {
	case h.broadcast <- event:
	default:
		logging.Warn("livefeed: broadcast buffer full, event dropped", logging.String("sessionId", event.SessionID))
	}
}

// ServeWS upgrades an authenticated HTTP request to a WebSocket
// subscriber connection. Subscribers optionally scope themselves to one
// or more session IDs via the "sessions" query parameter (comma
// separated); an empty value subscribes to every session.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID, err := h.authenticate(r)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("livefeed: upgrade failed", logging.String("remoteAddr", r.RemoteAddr))
		return
	}

	sessions := make(map[string]bool)
	if raw := r.URL.Query().Get("sessions"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			sessions[strings.TrimSpace(id)] = true
		}
	}

	client := &Client{
		conn:     conn,
		send:     make(chan []byte, 1024),
		userID:   userID,
		sessions: sessions,
	}
	h.register <- client

	go h.writePump(client)
	go h.readPump(client)
}

func (h *Hub) writePump(client *Client) {
	defer client.conn.Close()
	for msg := range client.send {
		if err := client.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

func (h *Hub) readPump(client *Client) {
	defer func() {
		h.unregister <- client
		client.conn.Close()
	}()
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) authenticate(r *http.Request) (string, error) {
	token := r.URL.Query().Get("token")
	if token == "" {
		header := r.Header.Get("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			token = parts[1]
		}
	}
	if token == "" {
		return "", fmt.Errorf("no token provided")
	}
	claims, err := h.authSvc.ValidateToken(token)
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	return claims.UserID, nil
}
