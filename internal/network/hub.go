package network

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/ywchen/kitchen-master/server/internal/engine"
	"github.com/ywchen/kitchen-master/server/internal/events"
	"github.com/ywchen/kitchen-master/server/internal/platform/logger"
	"github.com/ywchen/kitchen-master/server/internal/platform/metrics"
)

// Envelope is the wire frame for every hub broadcast and client reply.
type Envelope struct {
	Type string      `json:"type"` // "snapshot", "event", "ack", "error"
	Data interface{} `json:"data"`
}

// Hub maintains the set of active clients and broadcasts messages to them.
// It is the read-only window onto the engine: snapshots and events flow
// out, actions flow in through each client's pump.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
	engine     *engine.Engine
	logger     *logger.Logger
}

// NewHub initializes a new WebSocket Hub bound to the engine.
func NewHub(e *engine.Engine, log *logger.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		engine:     e,
		logger:     log,
	}
}

// Run starts the Hub's main loop to handle client connections and
// broadcasts. Call in a goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("WebSocket Hub shutting down")
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			metrics.Get().RecordWSConnection(1)
			h.logger.Info("New WebSocket client connected")
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				metrics.Get().RecordWSConnection(-1)
				h.logger.Info("WebSocket client disconnected")
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
					metrics.Get().RecordWSMessage(false)
				default:
					close(client.send)
					delete(h.clients, client)
					metrics.Get().RecordWSError()
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast serializes an envelope and queues it for all clients.
func (h *Hub) Broadcast(env Envelope) {
	payload, err := json.Marshal(env)
	if err != nil {
		h.logger.Error("Failed to serialize %s broadcast: %v", env.Type, err)
		return
	}
	h.broadcast <- payload
}

// StartEventPoller spawns a goroutine that tails the EventLog and pushes
// new events to all clients as notifications.
func (h *Hub) StartEventPoller(ctx context.Context, eventLog *events.EventLog) {
	go func() {
		pollInterval := time.NewTicker(200 * time.Millisecond)
		defer pollInterval.Stop()

		mark := 0

		for {
			select {
			case <-ctx.Done():
				return
			case <-pollInterval.C:
				fresh := eventLog.Since(mark)
				for _, event := range fresh {
					h.Broadcast(Envelope{Type: "event", Data: event})
				}
				mark += len(fresh)
			}
		}
	}()
}

// StartSnapshotPoller spawns a goroutine that pushes a full state snapshot
// at the tick cadence, so every connected UI renders the same frame.
func (h *Hub) StartSnapshotPoller(ctx context.Context) {
	go func() {
		pollInterval := time.NewTicker(engine.TickRate)
		defer pollInterval.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-pollInterval.C:
				h.Broadcast(Envelope{Type: "snapshot", Data: h.engine.Snapshot()})
			}
		}
	}()
}
