// Package stream pushes ledger events to connected dashboards so balances
// and pending lists refresh without polling.
package stream

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event is one ledger change pushed to subscribers. ChapterID is nil for
// national-scope events; clients filter on their own scope.
type Event struct {
	Kind      string      `json:"kind"` // "transaction", "transfer", "receipt", "bank_movement"
	ChapterID *int        `json:"chapter_id,omitempty"`
	Payload   interface{} `json:"payload"`
	At        time.Time   `json:"at"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Hub struct {
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
	broadcast  chan Event
}

func NewHub() *Hub {
	h := &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Event, 64),
	}
	go h.run()
	return h
}

// Publish queues an event for all subscribers. Never blocks a write path:
// if the buffer is full the event is dropped, clients resync on next load.
func (h *Hub) Publish(ev Event) {
	ev.At = time.Now()
	select {
	case h.broadcast <- ev:
	default:
		log.Printf("[Stream] buffer full, dropping %s event", ev.Kind)
	}
}

// HandleWebSocket upgrades the connection and keeps it registered until the
// client goes away
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	h.clientsMux.Lock()
	h.clients[conn] = true
	h.clientsMux.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.clientsMux.Lock()
			delete(h.clients, conn)
			h.clientsMux.Unlock()
			break
		}
	}
}

func (h *Hub) run() {
	for ev := range h.broadcast {
		h.clientsMux.Lock()
		for client := range h.clients {
			if err := client.WriteJSON(ev); err != nil {
				client.Close()
				delete(h.clients, client)
			}
		}
		h.clientsMux.Unlock()
	}
}
