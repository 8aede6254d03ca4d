package ws

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/kindredgraph/kindred/internal/httputil"
	"github.com/kindredgraph/kindred/internal/metrics"
)

const (
	writeTimeout     = 10 * time.Second
	wsReadLimit      = 16 << 10
	clientSendBuffer = 256
	maxConnLifetime  = 4 * time.Hour
	pingInterval     = 30 * time.Second
	pingTimeout      = 10 * time.Second
	maxMissedPongs   = int32(2)
)

// Dispatcher answers one interactive request. It must honour ctx: a request
// is cancelled as soon as a newer one arrives on the same connection.
type Dispatcher interface {
	Dispatch(ctx context.Context, req Request) Response
}

// Client wraps a single WebSocket connection managed by the Hub. Queries on
// one connection follow last-request-wins: a new query cancels the one in
// flight and only the newest result is written back.
type Client struct {
	hub         *Hub
	conn        *websocket.Conn
	send        chan []byte
	log         *logrus.Logger
	dispatcher  Dispatcher
	connectedAt time.Time

	mu      sync.Mutex
	closed  bool
	gen     uint64
	cancel  context.CancelFunc
	running sync.WaitGroup
}

// NewClient creates a new Client for the given WebSocket connection.
func NewClient(hub *Hub, conn *websocket.Conn, dispatcher Dispatcher) *Client {
	return &Client{
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, clientSendBuffer),
		log:         hub.log,
		dispatcher:  dispatcher,
		connectedAt: time.Now(),
	}
}

// closeSend safely closes the send channel exactly once.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.closed = true
	close(c.send)
}

// trySend queues msg without blocking. It reports false when the client is
// closed or its buffer is full.
func (c *Client) trySend(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) pending() int { return len(c.send) }

// ReadPump reads messages from the WebSocket connection until it closes.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.cancelCurrent()
		c.running.Wait()
		c.hub.Unregister(c)
		c.conn.CloseNow() //nolint:errcheck // best-effort close on teardown
	}()

	c.conn.SetReadLimit(wsReadLimit)

	for {
		_, msgBytes, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				c.log.WithField("status", websocket.CloseStatus(err)).Debug("client disconnected")
			}

			return
		}

		c.handleMessage(ctx, msgBytes)
	}
}

// handleMessage processes an incoming client message.
func (c *Client) handleMessage(ctx context.Context, msgBytes []byte) {
	var req Request
	if err := json.Unmarshal(msgBytes, &req); err != nil {
		c.reply(Response{Type: TypeError, Error: &httputil.ErrorResponse{
			Code:    "invalid_request",
			Message: "message is not valid JSON",
		}})

		return
	}

	switch req.Type {
	case TypeSubscribe:
		if !c.hub.ReplayEvents(c, req.LastEventID) {
			msg, err := json.Marshal(ResetMsg{
				Type:   TypeReset,
				Reason: "requested events no longer available, perform full refresh",
			})
			if err == nil {
				c.trySend(msg)
			}
		}
	case TypeFamily, TypePath, TypeSearch:
		c.start(ctx, req)
	default:
		c.reply(Response{Type: TypeError, Seq: req.Seq, Error: &httputil.ErrorResponse{
			Code:    "invalid_request",
			Message: "unknown message type " + req.Type,
		}})
	}
}

// start cancels the request in flight, if any, and runs req in its place.
func (c *Client) start(ctx context.Context, req Request) {
	reqCtx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}

	c.gen++
	gen := c.gen
	c.cancel = cancel
	c.mu.Unlock()

	c.running.Add(1)

	go func() {
		defer c.running.Done()
		defer cancel()

		resp := c.dispatcher.Dispatch(reqCtx, req)
		resp.Seq = req.Seq

		if !c.deliver(gen, resp) {
			metrics.SupersededRequests.Inc()
			c.log.WithFields(logrus.Fields{"type": req.Type, "seq": req.Seq}).Debug("superseded result dropped")
		}
	}()
}

// deliver writes resp if gen is still the newest request.
func (c *Client) deliver(gen uint64, resp Response) bool {
	msg, err := json.Marshal(resp)
	if err != nil {
		c.log.WithError(err).Error("failed to marshal response")

		return true
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		return false
	}

	c.cancel = nil

	if c.closed {
		return true
	}

	select {
	case c.send <- msg:
	default:
		c.log.Warn("send buffer full, dropping response")
	}

	return true
}

func (c *Client) reply(resp Response) {
	msg, err := json.Marshal(resp)
	if err != nil {
		return
	}

	c.trySend(msg)
}

func (c *Client) cancelCurrent() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// sendPing sends a WebSocket ping and tracks missed pongs.
// Returns true if the connection should be closed.
func (c *Client) sendPing(ctx context.Context, missedPongs *atomic.Int32) bool {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := c.conn.Ping(pingCtx)
	cancel()

	if err != nil {
		if missedPongs.Add(1) >= maxMissedPongs {
			c.log.Debug("closing: 2 consecutive missed pongs")

			return true
		}

		return false
	}

	missedPongs.Store(0)

	return false
}

// WritePump writes messages from the send channel to the WebSocket connection.
// It enforces a maximum connection lifetime.
func (c *Client) WritePump(ctx context.Context) {
	defer c.conn.CloseNow() //nolint:errcheck // best-effort close on teardown

	lifetimeTimer := time.NewTimer(time.Until(c.connectedAt.Add(maxConnLifetime)))
	defer lifetimeTimer.Stop()

	pingTicker := time.NewTicker(pingInterval)
	defer pingTicker.Stop()

	var missedPongs atomic.Int32

	for {
		select {
		case <-pingTicker.C:
			if c.sendPing(ctx, &missedPongs) {
				return
			}
		case msg, ok := <-c.send:
			if !ok {
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := c.conn.Write(writeCtx, websocket.MessageText, msg)
			cancel()

			if err != nil {
				c.log.WithError(err).Debug("write failed")

				return
			}
		case <-lifetimeTimer.C:
			c.log.Info("closing WebSocket: max connection lifetime exceeded")
			c.conn.Close(websocket.StatusNormalClosure, "max connection lifetime exceeded") //nolint:errcheck // best-effort

			return
		}
	}
}
