package rpc

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

// ErrClosed is returned by WSClient.Call after Close, or after the
// connection has failed.
var ErrClosed = errors.New("websocket connection closed")

// WSClient sends JSON-RPC requests over a single WebSocket connection.
//
// One call is in flight at a time. Frames whose id does not match the pending
// request (subscription notifications, late replies) are skipped. There is no
// reconnect: once a read or write fails the client is unusable.
type WSClient struct {
	cfg    ClientConfig
	conn   *websocket.Conn
	nextID atomic.Uint64
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

func DialWS(ctx context.Context, cfg ClientConfig, logger *slog.Logger) (*WSClient, error) {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("provider", cfg.Name)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, cfg.URL, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "error while dialing websocket %s", cfg.Name)
	}
	logger.Debug("connected", "url", cfg.URL)

	return &WSClient{cfg: cfg, conn: conn, logger: logger}, nil
}

func (c *WSClient) Name() string { return c.cfg.Name }

func (c *WSClient) Call(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	deadline := time.Now().Add(c.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	req := newRequest(c.nextID.Add(1), method, params)
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return nil, c.fail(err)
	}
	if err := c.conn.WriteJSON(req); err != nil {
		return nil, c.fail(errors.Wrapf(err, "failed to send %s", method))
	}

	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return nil, c.fail(err)
	}
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return nil, c.fail(errors.Wrapf(err, "failed to read %s response", method))
		}

		var resp Response
		if err := json.Unmarshal(message, &resp); err != nil {
			return nil, c.fail(errors.Wrap(err, "failed to unmarshal ws message"))
		}
		if resp.ID != req.ID {
			c.logger.Debug("skipping frame", "id", resp.ID, "want", req.ID)
			continue
		}
		if resp.Error != nil {
			return nil, resp.Error
		}
		return resp.Result, nil
	}
}

// fail marks the connection unusable. Called with mu held.
func (c *WSClient) fail(err error) error {
	c.closed = true
	_ = c.conn.Close()
	return err
}

// Close sends a normal-closure frame and closes the connection. Safe to call
// more than once.
func (c *WSClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second)); err != nil {
		c.logger.Debug("failed to write close message", "error", err)
	}
	return c.conn.Close()
}
