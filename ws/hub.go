package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vnkhanh/e-learning-backend/services"
)

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Hub fans change events out to websocket subscribers. Clients either follow
// one collection or everything.
type Hub struct {
	Clients       map[string]map[*websocket.Conn]*Client // per collection
	GlobalClients map[*websocket.Conn]*Client
	Mutex         sync.RWMutex

	log logrus.FieldLogger
}

func NewHub(log logrus.FieldLogger) *Hub {
	return &Hub{
		Clients:       make(map[string]map[*websocket.Conn]*Client),
		GlobalClients: make(map[*websocket.Conn]*Client),
		log:           log,
	}
}

// Stats is reported by the health endpoint.
type Stats struct {
	Collections int `json:"collections"`
	Clients     int `json:"clients"`
	Global      int `json:"global"`
}

func (h *Hub) GetStats() Stats {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	s := Stats{Collections: len(h.Clients), Global: len(h.GlobalClients)}
	for _, clients := range h.Clients {
		s.Clients += len(clients)
	}
	return s
}

// Register subscribes conn to one collection.
func (h *Hub) Register(collection string, conn *websocket.Conn) *Client {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if _, ok := h.Clients[collection]; !ok {
		h.Clients[collection] = make(map[*websocket.Conn]*Client)
	}
	client := &Client{Conn: conn, Send: make(chan []byte, 256)}
	h.Clients[collection][conn] = client
	return client
}

// RegisterGlobal subscribes conn to every collection.
func (h *Hub) RegisterGlobal(conn *websocket.Conn) *Client {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	client := &Client{Conn: conn, Send: make(chan []byte, 256)}
	h.GlobalClients[conn] = client
	return client
}

// Publish implements services.Publisher. Clients whose buffer is full miss
// the event.
func (h *Hub) Publish(ev services.ChangeEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.log.WithError(err).Error("marshal change event")
		return
	}

	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	for _, client := range h.Clients[ev.Collection] {
		select {
		case client.Send <- data:
		default:
		}
	}
	for _, client := range h.GlobalClients {
		select {
		case client.Send <- data:
		default:
		}
	}
}

func (h *Hub) Unregister(collection string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if clients, ok := h.Clients[collection]; ok {
		if client, ok := clients[conn]; ok {
			close(client.Send)
			delete(clients, conn)
		}
		if len(clients) == 0 {
			delete(h.Clients, collection)
		}
	}
}

func (h *Hub) UnregisterGlobal(conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if client, ok := h.GlobalClients[conn]; ok {
		close(client.Send)
		delete(h.GlobalClients, conn)
	}
}

// writePump drains client.Send until it is closed or a write fails.
func writePump(client *Client) {
	defer func() {
		client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
		client.Conn.Close()
	}()
	for msg := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// readPump discards inbound frames and returns when the peer goes away.
func readPump(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
