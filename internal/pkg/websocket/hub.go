package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusconnect/backend/internal/app/models"
)

// Hub maintains the set of connected clients, keyed by user id, and
// pushes chat messages to them. Messages are persisted through the REST
// API before they reach the hub; delivery here is best effort.
type Hub struct {
	// Registered clients organized by user ID. A user may hold several
	// connections (multiple tabs, devices).
	clients map[int64]map[*Client]bool

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Outbound events with their target users
	deliver chan *delivery

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	logger zerolog.Logger
}

// Event is the envelope pushed over a WebSocket connection
type Event struct {
	Type      string          `json:"type"`
	Payload   *models.Message `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

type delivery struct {
	event      *Event
	recipients []int64
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan *delivery, 64),
		logger:     logger,
	}
}

// Run starts the hub, handling client registrations and deliveries
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case d := <-h.deliver:
			h.deliverEvent(d)
		}
	}
}

// BroadcastMessage pushes a persisted chat message to every recipient's
// open connections. It never blocks the caller: when the hub is saturated
// the event is dropped and clients catch up over the REST history.
func (h *Hub) BroadcastMessage(message *models.Message, recipients []int64) {
	d := &delivery{
		event:      &Event{Type: "message", Payload: message, Timestamp: time.Now()},
		recipients: recipients,
	}
	select {
	case h.deliver <- d:
	default:
		h.logger.Warn().Int64("chatID", message.ChatID).Msg("Hub saturated, dropped realtime delivery")
	}
}

// ConnectionCount returns the number of open connections for a user
func (h *Hub) ConnectionCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	h.logger.Info().
		Int64("userID", client.userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.clients[client.userID]; ok {
		if _, ok := conns[client]; ok {
			delete(conns, client)
			close(client.send)
			if len(conns) == 0 {
				delete(h.clients, client.userID)
			}

			h.logger.Info().
				Int64("userID", client.userID).
				Str("addr", client.conn.RemoteAddr().String()).
				Msg("Client unregistered")
		}
	}
}

func (h *Hub) deliverEvent(d *delivery) {
	data, err := json.Marshal(d.event)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to marshal event for delivery")
		return
	}

	h.mu.RLock()
	var stale []*Client
	for _, userID := range d.recipients {
		for client := range h.clients[userID] {
			select {
			case client.send <- data:
			default:
				// Send buffer full; the client is slow or gone.
				stale = append(stale, client)
			}
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.unregisterClient(client)
	}
}
