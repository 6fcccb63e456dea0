package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/familyhub/portal/internal/pkg/metrics"
)

// Hub maintains the set of active clients and pushes change messages to them
type Hub struct {
	// Registered clients organized by channel name
	clients map[string]map[*Client]bool

	// Outbound change messages
	broadcast chan *Message

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent reads of the clients map
	mu sync.RWMutex

	// Closed when Run returns
	done chan struct{}

	logger zerolog.Logger
}

// Message tells subscribers that a row changed. Clients reload what they display.
type Message struct {
	// Channel the message is delivered on, usually a table name
	Channel string `json:"-"`

	// Type of change, e.g. "INSERT"
	Type string `json:"type"`

	// Table the changed row belongs to
	Table string `json:"table"`

	// ID of the changed row
	ID string `json:"id,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Message, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string]map[*Client]bool),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run handles registrations and broadcasts until ctx is cancelled, then closes every client
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)

		case <-ctx.Done():
			h.closeAll()
			return
		}
	}
}

// registerClient registers a new client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.channel]; !ok {
		h.clients[client.channel] = make(map[*Client]bool)
	}
	h.clients[client.channel][client] = true
	metrics.WebsocketClients.Inc()

	h.logger.Info().
		Str("channel", client.channel).
		Str("userID", client.userID.String()).
		Msg("Client registered")
}

// unregisterClient unregisters a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

// removeLocked drops a client and closes its send channel; h.mu must be held
func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.clients[client.channel]
	if !ok || !clients[client] {
		return
	}

	delete(clients, client)
	close(client.send)
	metrics.WebsocketClients.Dec()

	if len(clients) == 0 {
		delete(h.clients, client.channel)
	}

	h.logger.Info().
		Str("channel", client.channel).
		Str("userID", client.userID.String()).
		Msg("Client unregistered")
}

// broadcastMessage sends a message to every client of its channel.
// Clients whose buffer is full are dropped.
func (h *Hub) broadcastMessage(message *Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[message.Channel]
	if !ok {
		h.logger.Debug().Str("channel", message.Channel).Msg("No clients on channel for broadcast")
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().Err(err).Str("channel", message.Channel).Msg("Failed to marshal message for broadcast")
		return
	}

	var slow []*Client
	for client := range clients {
		select {
		case client.send <- data:
		default:
			slow = append(slow, client)
		}
	}
	for _, client := range slow {
		h.logger.Warn().Str("userID", client.userID.String()).Msg("Dropping slow websocket client")
		h.removeLocked(client)
	}

	h.logger.Debug().
		Str("channel", message.Channel).
		Int("clientCount", len(clients)).
		Msg("Message broadcasted to channel")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}

// Broadcast queues a message for delivery. It returns without sending once the hub has stopped.
func (h *Hub) Broadcast(message *Message) {
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}

	select {
	case h.broadcast <- message:
	case <-h.done:
	}
}

// Register adds a client; it is a no-op once the hub has stopped
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

// Unregister removes a client; it is a no-op once the hub has stopped
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ClientsCount returns the number of connected clients on a channel
func (h *Hub) ClientsCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[channel])
}
