package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Event is the wire shape pushed to connected clients. Types in use:
// "notification" and "new_comment".
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type clientCommand struct {
	Action string `json:"action"`
	Room   string `json:"room"`
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID int64
	rooms  map[string]bool
	closed bool // guarded by hub.mu
}

// Hub tracks connected clients, per-user connections and rooms keyed by
// account id. Delivery is best effort: a client with a full send buffer
// is dropped rather than blocking the broadcaster.
type Hub struct {
	mu          sync.RWMutex
	clients     map[*Client]bool
	userClients map[int64][]*Client
	rooms       map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		userClients: make(map[int64][]*Client),
		rooms:       make(map[string]map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.userClients[client.userID] = append(h.userClients[client.userID], client)
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.closed = true
				close(client.send)

				clients := h.userClients[client.userID]
				for i, c := range clients {
					if c == client {
						h.userClients[client.userID] = append(clients[:i], clients[i+1:]...)
						break
					}
				}
				if len(h.userClients[client.userID]) == 0 {
					delete(h.userClients, client.userID)
				}

				for room := range client.rooms {
					h.removeFromRoom(client, room)
				}
			}
			h.mu.Unlock()
		}
	}
}

// SendToUser delivers an event to every connection the user has open.
func (h *Hub) SendToUser(userID int64, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	h.mu.RLock()
	for _, client := range h.userClients[userID] {
		client.enqueue(payload)
	}
	h.mu.RUnlock()
}

// BroadcastToRoom delivers an event to every client that joined the
// room (rooms are keyed by account id).
func (h *Hub) BroadcastToRoom(room string, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	h.mu.RLock()
	for client := range h.rooms[room] {
		client.enqueue(payload)
	}
	h.mu.RUnlock()
}

func (h *Hub) joinRoom(client *Client, room string) {
	h.mu.Lock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][client] = true
	client.rooms[room] = true
	h.mu.Unlock()
}

func (h *Hub) leaveRoom(client *Client, room string) {
	h.mu.Lock()
	h.removeFromRoom(client, room)
	delete(client.rooms, room)
	h.mu.Unlock()
}

// caller holds h.mu
func (h *Hub) removeFromRoom(client *Client, room string) {
	if members, ok := h.rooms[room]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

// caller holds h.mu (read side); the send cannot race the close in Run,
// which flips closed under the write lock before closing the channel.
func (c *Client) enqueue(payload []byte) {
	if c.closed {
		return
	}
	select {
	case c.send <- payload:
	default:
		// Slow client. Hand it to Run off this goroutine so the
		// broadcaster never blocks while holding the lock.
		go func() { c.hub.unregister <- c }()
	}
}
