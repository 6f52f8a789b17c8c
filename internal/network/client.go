package network

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ywchen/kitchen-master/server/internal/platform/metrics"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// PlayerAction is an incoming command from the frontend. Only the fields
// relevant to the named action need to be set.
type PlayerAction struct {
	Action       string `json:"action"`
	IngredientID string `json:"ingredient_id,omitempty"`
	RecipeID     string `json:"recipe_id,omitempty"`
	OrderID      string `json:"order_id,omitempty"`
	StoveID      int    `json:"stove_id,omitempty"`
}

// Client represents an active WebSocket connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewClient creates a new WebSocket client and returns it.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// Register adds the client to the hub.
func (c *Client) Register() {
	c.hub.register <- c
}

// ReadPump pumps actions from the websocket connection into the engine.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Error("WebSocket read error: %v", err)
			}
			break
		}
		metrics.Get().RecordWSMessage(true)

		var action PlayerAction
		if err := json.Unmarshal(message, &action); err != nil {
			c.hub.logger.Error("Failed to parse PlayerAction: %v", err)
			c.reply(Envelope{Type: "error", Data: "malformed action"})
			continue
		}

		c.handlePlayerAction(action)
	}
}

// handlePlayerAction routes one command to the engine's action API and
// replies with the outcome. Rejections are terminal for the attempt; the
// client decides whether to try again.
func (c *Client) handlePlayerAction(action PlayerAction) {
	if _, err := Dispatch(c.hub.engine, action); err != nil {
		if err == ErrUnknownAction {
			c.hub.logger.Warn("Unknown PlayerAction type: %s", action.Action)
		}
		c.reply(Envelope{Type: "error", Data: err.Error()})
		return
	}
	c.reply(Envelope{Type: "ack", Data: action.Action})
}

// reply queues an envelope for this client only.
func (c *Client) reply(env Envelope) {
	payload, err := json.Marshal(env)
	if err != nil {
		return
	}
	select {
	case c.send <- payload:
		metrics.Get().RecordWSMessage(false)
	default:
		metrics.Get().RecordWSError()
	}
}

// WritePump pumps messages from the hub to the websocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				metrics.Get().RecordWSError()
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
