package websocket

import (
	"context"
	"encoding/json"
	"time"

	"maplemed-support-be/internal/pkg/logger"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 90 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16 * 1024
)

// TurnFunc answers one inbound text frame. The result is sent back as JSON.
type TurnFunc func(ctx context.Context, message string) interface{}

// Client is one chat connection. Frames are answered in order, one at a
// time, so a session never sees overlapping turns from the same socket.
type Client struct {
	Conn      *websocket.Conn
	SessionID string
	UserID    string

	// Buffered channel of outbound messages.
	Send chan []byte

	turn   TurnFunc
	logger logger.ILogger
}

// ServeChat blocks until the peer goes away or ctx ends. Turns run under a
// context derived from ctx.
func ServeChat(ctx context.Context, conn *websocket.Conn, sessionID, userID string, turn TurnFunc, log logger.ILogger) {
	client := &Client{
		Conn:      conn,
		SessionID: sessionID,
		UserID:    userID,
		Send:      make(chan []byte, 16),
		turn:      turn,
		logger:    log,
	}

	ctx, cancel := context.WithCancel(ctx)
	watched := make(chan struct{})
	go func() {
		defer close(watched)
		client.closeOnDone(ctx)
	}()

	go client.writePump()
	client.readPump(ctx)

	// the conn is recycled once we return
	cancel()
	<-watched
}

// closeOnDone unblocks readPump once ctx ends.
func (c *Client) closeOnDone(ctx context.Context) {
	<-ctx.Done()
	c.Conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
		time.Now().Add(writeWait),
	)
	c.Conn.Close()
}

func (c *Client) details(extra map[string]interface{}) map[string]interface{} {
	d := map[string]interface{}{"session_id": c.SessionID, "user_id": c.UserID}
	for k, v := range extra {
		d[k] = v
	}
	return d
}

// readPump runs each inbound frame through turn and queues the reply.
func (c *Client) readPump(ctx context.Context) {
	defer close(c.Send)

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		kind, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("ChatSocket", "Unexpected close", c.details(map[string]interface{}{"error": err.Error()}))
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}

		reply, err := json.Marshal(c.turn(ctx, string(message)))
		if err != nil {
			c.logger.Error("ChatSocket", "Failed to encode reply", c.details(map[string]interface{}{"error": err.Error()}))
			continue
		}
		c.Send <- reply
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	}
}

// writePump writes queued replies and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
