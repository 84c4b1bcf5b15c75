package web

import (
	"encoding/json"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	// writeWait is how long to wait for a write to complete
	writeWait = 10 * time.Second

	// pongWait is how long to wait for a pong response
	pongWait = 60 * time.Second

	// pingPeriod must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize caps inbound command frames
	maxMessageSize = 1024
)

// Command is what a browser may send back over the socket.
type Command struct {
	Action string `json:"action"`
}

// Client is a single websocket connection. Writes go through the send
// channel so only the write pump touches the connection.
type Client struct {
	id        string
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	onCommand func(Command)
}

// NewClient registers a connection with the hub. onCommand runs on the
// read pump goroutine for each decoded inbound command.
func NewClient(hub *Hub, conn *websocket.Conn, onCommand func(Command)) *Client {
	client := &Client{
		id:        uuid.NewString(),
		hub:       hub,
		conn:      conn,
		send:      make(chan []byte, 256),
		onCommand: onCommand,
	}
	select {
	case hub.register <- client:
	case <-hub.done:
	}
	return client
}

// Send queues one message for this client only, dropping it when the
// client is backed up.
func (c *Client) Send(data []byte) {
	select {
	case c.send <- data:
	default:
	}
}

// Run starts the write pump and blocks reading until the connection
// closes.
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		if c.onCommand == nil {
			continue
		}
		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			continue
		}
		c.onCommand(cmd)
	}
}

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
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
