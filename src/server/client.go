package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"stock-dashboard/src/models"
	"stock-dashboard/src/stream"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Constants
// -----------------------------------------------------------------------------

const (
	writeWait      = 2 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------
// Client Structure
//
// One Client per WebSocket connection. The subscription handle is owned by
// the read pump goroutine alone, so subscribe/unsubscribe never race.
// -----------------------------------------------------------------------------

type Client struct {
	server *Server
	conn   *websocket.Conn
	send   chan models.MStreamMessage
	sub    *stream.Subscription
}

// -----------------------------------------------------------------------------

func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := &Client{
		server: s,
		conn:   conn,
		// Buffered channel so a pushing subscription never blocks on a
		// momentarily slow socket
		send: make(chan models.MStreamMessage, s.Config.Stream.SendBufferSize),
	}

	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------
// readPump - handles incoming subscribe/unsubscribe commands.
// Acts as a watchdog for the connection.
// -----------------------------------------------------------------------------

func (c *Client) readPump() {
	defer func() {
		// Teardown order matters: stopping the subscription first
		// guarantees no publisher goroutine writes to send after close.
		c.teardown()
		close(c.send)
		c.conn.Close()
		c.server.Logger.Info("Client disconnected")
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
				c.server.Logger.Info("WebSocket error: %v", err)
			}
			break
		}
		c.handleCommand(message)
	}
}

// -----------------------------------------------------------------------------

func (c *Client) handleCommand(message []byte) {
	now := time.Now().UTC().Unix()

	var cmd models.MStreamCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		c.enqueue(models.MStreamMessage{
			Type:      models.StreamTypeError,
			Error:     "invalid json",
			Timestamp: now,
		})
		return
	}

	switch cmd.Action {
	case "subscribe":
		if cmd.Symbol == "" {
			c.enqueue(models.MStreamMessage{
				Type:      models.StreamTypeError,
				Error:     "no symbol provided",
				Timestamp: now,
			})
			return
		}

		// Re-subscribing replaces the previous symbol
		c.teardown()
		c.sub = c.server.Publisher.Subscribe(context.Background(), cmd.Symbol, c.send)

		c.enqueue(models.MStreamMessage{
			Type:      models.StreamTypeSubscribed,
			Symbol:    cmd.Symbol,
			Timestamp: now,
		})

	case "unsubscribe":
		if c.sub == nil {
			return
		}
		symbol := c.sub.Symbol
		c.teardown()

		c.enqueue(models.MStreamMessage{
			Type:      models.StreamTypeUnsubscribed,
			Symbol:    symbol,
			Timestamp: now,
		})

	default:
		c.enqueue(models.MStreamMessage{
			Type:      models.StreamTypeError,
			Error:     "unknown action",
			Timestamp: now,
		})
	}
}

// -----------------------------------------------------------------------------

// teardown stops the active subscription, blocking until its polling loop
// has exited. Safe to call with no subscription.
func (c *Client) teardown() {
	if c.sub == nil {
		return
	}
	c.sub.Unsubscribe()
	c.sub = nil
}

// -----------------------------------------------------------------------------

// enqueue delivers a control message without blocking the read pump.
func (c *Client) enqueue(msg models.MStreamMessage) {
	select {
	case c.send <- msg:
	default:
		// Buffer full: the write pump is stalled and the watchdog will
		// reap the connection
	}
}

// -----------------------------------------------------------------------------
// writePump - sends messages to client
// -----------------------------------------------------------------------------

func (c *Client) writePump() {
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
				// Read pump closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.server.Logger.Info("Write error: %v", err)
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
