package server

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"koth/game"
)

// client is one player's websocket connection. Outbound messages go through
// a buffered queue so a slow reader never blocks the session loop.
type client struct {
	session *Session
	player  game.Player
	conn    *websocket.Conn

	mu     sync.Mutex
	send   chan Envelope
	closed bool
}

const sendQueueSize = 64

func newClient(s *Session, p game.Player, conn *websocket.Conn) *client {
	return &client{
		session: s,
		player:  p,
		conn:    conn,
		send:    make(chan Envelope, sendQueueSize),
	}
}

// enqueue queues an outbound message, dropping it if the client is too far
// behind. The next state broadcast resynchronizes a lagging client.
func (c *client) enqueue(env Envelope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- env:
	default:
	}
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// writePump serializes all writes to the connection.
func (c *client) writePump() {
	defer c.conn.Close()
	for env := range c.send {
		if err := c.conn.WriteJSON(env); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// readPump forwards submissions to the session until the connection drops.
// A silent or disconnected player is handled by the turn deadline, not here.
func (c *client) readPump() {
	defer c.conn.Close()
	for {
		var env Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			return
		}
		if env.Type != TypeSubmit {
			c.enqueue(mustEnvelope(TypeError, ErrorPayload{Message: "unexpected message type " + string(env.Type)}))
			continue
		}
		var payload SubmitPayload
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			c.enqueue(mustEnvelope(TypeError, ErrorPayload{Message: "malformed submit payload"}))
			continue
		}
		select {
		case c.session.submissions <- submission{player: c.player, turn: payload.Turn, actions: payload.Actions}:
		case <-c.session.done:
			return
		}
	}
}
