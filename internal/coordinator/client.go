package coordinator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hypelessli/hypeless/internal/protocol"
)

// Client is the page side of the socket. It learns the enabled flag from
// the coordinator's pushes and hands every push to a handler.
type Client struct {
	conn *websocket.Conn

	writeMu sync.Mutex

	mu      sync.Mutex
	enabled bool
	ready   chan struct{}
	gotFlag bool
}

// Dial connects to a coordinator page socket, e.g. ws://host:port/ws/page.
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing coordinator: %w", err)
	}
	return &Client{conn: conn, ready: make(chan struct{})}, nil
}

// Send delivers msg to the coordinator.
func (c *Client) Send(msg protocol.Message) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(msg)
}

// Enabled blocks until the coordinator has pushed its state.
func (c *Client) Enabled(ctx context.Context) (bool, error) {
	select {
	case <-c.ready:
	case <-ctx.Done():
		return true, ctx.Err()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled, nil
}

// Run reads pushes until the connection or ctx ends, calling handle for
// each. It returns nil on a normal close.
func (c *Client) Run(ctx context.Context, handle func(protocol.Message)) error {
	stop := context.AfterFunc(ctx, func() { c.conn.Close() })
	defer stop()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("reading from coordinator: %w", err)
		}
		msg, err := protocol.Decode(data)
		if err != nil {
			continue
		}
		if msg.Type == protocol.StateChanged {
			c.mu.Lock()
			c.enabled = *msg.Enabled
			if !c.gotFlag {
				c.gotFlag = true
				close(c.ready)
			}
			c.mu.Unlock()
		}
		if handle != nil {
			handle(msg)
		}
	}
}

// Close says goodbye and closes the connection.
func (c *Client) Close() error {
	c.writeMu.Lock()
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	c.writeMu.Unlock()
	return c.conn.Close()
}
