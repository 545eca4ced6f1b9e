package ws

import (
	"encoding/json"
	"sync"

	"go-parts-inventory/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// Event is the payload broadcast to every connected client
type Event struct {
	Type         string    `json:"type"`
	Action       string    `json:"action"`
	ProductID    uuid.UUID `json:"product_id"`
	Product      string    `json:"product,omitempty"`
	CurrentStock int64     `json:"current_stock"`
	Status       string    `json:"status,omitempty"`
	Message      string    `json:"message"`
}

const TypeStockUpdate = "stock_update"

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	done       chan struct{}
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			logger.Logger.Debug().Int("clients", h.ClientCount()).Msg("New WS Client Connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()

		case <-h.done:
			h.mutex.Lock()
			for conn := range h.Clients {
				conn.Close()
				delete(h.Clients, conn)
			}
			h.mutex.Unlock()
			return
		}
	}
}

// Add registers conn with the running hub. It reports false once the hub has stopped.
func (h *Hub) Add(conn *websocket.Conn) bool {
	select {
	case h.Register <- conn:
		return true
	case <-h.done:
		return false
	}
}

// Remove unregisters conn; after Stop the hub has already closed it
func (h *Hub) Remove(conn *websocket.Conn) {
	select {
	case h.Unregister <- conn:
	case <-h.done:
	}
}

// Stop ends Run and closes every client
func (h *Hub) Stop() {
	close(h.done)
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}

// Publish queues the event for broadcast. It never blocks the caller;
// events are dropped when the queue is full.
func (h *Hub) Publish(event Event) {
	msg, err := json.Marshal(event)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to encode ws event")
		return
	}
	select {
	case h.Broadcast <- msg:
	case <-h.done:
	default:
		logger.Logger.Warn().Str("action", event.Action).Msg("WS broadcast queue full, event dropped")
	}
}
