package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/picker/internal/logging"
)

// Client drives one remote session. Calls are serialised; each one sends a
// request and waits for its response.
type Client struct {
	mu      sync.Mutex
	ws      *websocket.Conn
	session string
	last    *Response
}

// Dial connects to a server's /ws endpoint and reads the greeting.
func Dial(ctx context.Context, url string) (*Client, error) {
	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	ws, httpResp, err := dialer.DialContext(ctx, url, http.Header{})
	if err != nil {
		if httpResp != nil {
			return nil, fmt.Errorf("failed to connect to %s (HTTP %d): %w", url, httpResp.StatusCode, err)
		}
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}

	c := &Client{ws: ws}
	hello, err := c.read(ctx)
	if err != nil {
		_ = ws.Close()
		return nil, fmt.Errorf("failed to read greeting: %w", err)
	}
	if hello.Op != OpHello {
		_ = ws.Close()
		return nil, fmt.Errorf("unexpected greeting op %q", hello.Op)
	}
	c.session = hello.Session
	c.last = hello

	logging.Debug("Connected to picker server",
		zap.String("url", url),
		zap.String("session_id", c.session),
	)
	return c, nil
}

// SessionID returns the id the server assigned to this connection.
func (c *Client) SessionID() string {
	return c.session
}

// Last returns the most recent response.
func (c *Client) Last() *Response {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// SetItems replaces the remote Source List.
func (c *Client) SetItems(ctx context.Context, items []WireItem) (*Response, error) {
	if items == nil {
		items = []WireItem{}
	}
	return c.Do(ctx, &Request{Op: OpSetItems, Items: items})
}

// Search sets the remote search text.
func (c *Client) Search(ctx context.Context, text string) (*Response, error) {
	return c.Do(ctx, &Request{Op: OpSearch, Text: text})
}

// Toggle flips name using the caller's last observed flag.
func (c *Client) Toggle(ctx context.Context, name string, currentFlag bool) (*Response, error) {
	return c.Do(ctx, &Request{Op: OpToggle, Name: name, Selected: &currentFlag})
}

// SelectAll sets every item, or every visible item, to flag.
func (c *Client) SelectAll(ctx context.Context, flag, visibleOnly bool) (*Response, error) {
	return c.Do(ctx, &Request{Op: OpSelectAll, Selected: &flag, VisibleOnly: visibleOnly})
}

// View fetches the current view without changing anything.
func (c *Client) View(ctx context.Context) (*Response, error) {
	return c.Do(ctx, &Request{Op: OpView})
}

// Do sends req and waits for the response. A response carrying an error is
// returned together with that error as a *ProtocolError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	deadline := time.Now().Add(writeWait)
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	}
	_ = c.ws.SetWriteDeadline(deadline)
	if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
		return nil, fmt.Errorf("failed to send %s: %w", req.Op, err)
	}

	resp, err := c.read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", req.Op, err)
	}
	c.last = resp
	return resp, resp.Err()
}

// WriteRaw sends an arbitrary frame and reads the response. It exists for
// protocol tests and debugging.
func (c *Client) WriteRaw(ctx context.Context, messageType int, data []byte) (*Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ws.WriteMessage(messageType, data); err != nil {
		return nil, err
	}
	resp, err := c.read(ctx)
	if err != nil {
		return nil, err
	}
	return resp, resp.Err()
}

func (c *Client) read(ctx context.Context) (*Response, error) {
	deadline := time.Now().Add(pongWait)
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	}
	_ = c.ws.SetReadDeadline(deadline)

	_, data, err := c.ws.ReadMessage()
	if err != nil {
		return nil, err
	}

	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &resp, nil
}

// Close sends a normal close frame and closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	return c.ws.Close()
}
