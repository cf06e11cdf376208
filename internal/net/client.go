package net

import (
	"context"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// Client is a connection to a Host.
type Client struct {
	conn    *websocket.Conn
	mu      sync.Mutex
	replica *Replica
}

// Dial connects to a host's websocket URL.
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", url, err)
	}
	return &Client{conn: conn, replica: NewReplica()}, nil
}

// Send writes a request to the host.
func (c *Client) Send(typ MessageType, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(Message{Type: typ, Text: text})
}

// Listen reads messages until the connection closes. Draw and snapshot
// messages are merged into the replica before handle sees them.
func (c *Client) Listen(handle func(Message)) error {
	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return err
		}
		switch msg.Type {
		case TypeDraw:
			if msg.Primitive != nil {
				c.replica.Add(*msg.Primitive)
			}
		case TypeSnapshot:
			c.replica.Merge(msg.Primitives)
		}
		if handle != nil {
			handle(msg)
		}
	}
}

// Replica returns the client's copy of the drawing.
func (c *Client) Replica() *Replica { return c.replica }

// Close sends a close frame and closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.mu.Unlock()
	return c.conn.Close()
}
