package api

import (
	"sync"

	"github.com/gorilla/websocket"
)

// ProgressEvent to jeden krok przetwarzania dokumentu, transmitowany do
// frontendu jako pasek postępu
type ProgressEvent struct {
	Percent int    `json:"percent"`
	Message string `json:"message"`
}

// Hub rozsyła zdarzenia postępu do podłączonych klientów WebSocket.
// Klient, do którego nie da się pisać, jest po prostu odłączany.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewHub tworzy pusty hub
func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]struct{})}
}

// Add rejestruje nowe połączenie
func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = struct{}{}
}

// Remove wyrejestrowuje i zamyka połączenie
func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

// Broadcast wysyła zdarzenie postępu do wszystkich klientów
func (h *Hub) Broadcast(percent int, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	event := ProgressEvent{Percent: percent, Message: message}
	for conn := range h.clients {
		if err := conn.WriteJSON(event); err != nil {
			delete(h.clients, conn)
			conn.Close()
		}
	}
}
