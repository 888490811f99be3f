package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/picker/internal/catalog"
	"github.com/muurk/picker/internal/logging"
	"github.com/muurk/picker/internal/picker"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next message or pong from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 1 << 20
)

// connection is one WebSocket and the session it owns.
type connection struct {
	id         string
	remoteAddr string
	ws         *websocket.Conn
	session    *session

	writeMu sync.Mutex
	done    chan struct{}
	once    sync.Once
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !s.accepting() {
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error.
		logging.Warn("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	id := uuid.NewString()
	c := &connection{
		id:         id,
		remoteAddr: r.RemoteAddr,
		ws:         ws,
		session:    picker.Initialize[catalog.Details](picker.WithID(id)),
		done:       make(chan struct{}),
	}

	if !s.register(c) {
		c.closeWithReason(websocket.CloseGoingAway, "server shutting down")
		c.session.Close()
		return
	}
	logging.LogConnection(c.remoteAddr, "websocket_upgraded")
	logging.LogSessionEvent(id, "opened", zap.String("remote_addr", c.remoteAddr))

	defer func() {
		s.unregister(c)
		c.close()
		c.session.Close()
		logging.LogConnection(c.remoteAddr, "websocket_closed")
		s.wg.Done()
	}()

	go c.pingLoop()
	c.readLoop()
}

// readLoop answers requests until the peer goes away or a frame cannot be
// read. Bad requests are answered with an error response.
func (c *connection) readLoop() {
	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	if err := c.send(buildResponse(c.session, OpHello, nil)); err != nil {
		return
	}

	for {
		messageType, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Info("Connection closed or error reading frame",
					zap.String("remote_addr", c.remoteAddr),
					zap.Error(err),
				)
			}
			return
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))

		var resp *Response
		if messageType != websocket.TextMessage {
			resp = buildResponse(c.session, "", newProtocolError(KindMalformed, "", "binary frames are not supported"))
		} else {
			resp = c.handle(data)
		}

		if err := c.send(resp); err != nil {
			logging.Warn("Failed to write response",
				zap.String("remote_addr", c.remoteAddr),
				zap.Error(err),
			)
			return
		}
	}
}

func (c *connection) handle(data []byte) *Response {
	req, err := decodeRequest(data)
	if err != nil {
		logging.LogMessage(c.remoteAddr, "received", "", data)
		return buildResponse(c.session, "", err)
	}
	logging.LogMessage(c.remoteAddr, "received", req.Op, data)

	err = apply(c.session, req)
	return buildResponse(c.session, req.Op, err)
}

func (c *connection) send(resp *Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}
	logging.LogMessage(c.remoteAddr, "sent", resp.Op, data)
	return nil
}

func (c *connection) pingLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.writeMu.Lock()
			err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			c.writeMu.Unlock()
			if err != nil {
				logging.Debug("Ping failed", zap.String("remote_addr", c.remoteAddr), zap.Error(err))
				return
			}
		}
	}
}

// closeWithReason sends a close frame before closing. Safe to call from
// another goroutine while readLoop runs.
func (c *connection) closeWithReason(code int, reason string) {
	c.writeMu.Lock()
	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(writeWait))
	c.writeMu.Unlock()
	c.close()
}

func (c *connection) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.ws.Close()
	})
}
