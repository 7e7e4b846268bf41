package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

// HTTPClient sends JSON-RPC requests over HTTP POST. Safe for concurrent use.
type HTTPClient struct {
	cfg        ClientConfig
	httpClient *http.Client
	nextID     atomic.Uint64
	logger     *slog.Logger
}

func NewHTTPClient(cfg ClientConfig, logger *slog.Logger) *HTTPClient {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &HTTPClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With("provider", cfg.Name),
	}
}

func (c *HTTPClient) Name() string { return c.cfg.Name }

func (c *HTTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// Call executes a JSON-RPC request with exponential backoff between attempts.
// Errors reported by the node (*RPCError) are returned at once.
func (c *HTTPClient) Call(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	req := newRequest(c.nextID.Add(1), method, params)
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode %s request", method)
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.backoff(attempt)
			c.logger.Debug("retrying request", "method", method, "attempt", attempt, "backoff", backoff, "error", lastErr)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := c.doRequest(ctx, body)
		if err == nil {
			if resp.Error != nil {
				return nil, resp.Error
			}
			return resp.Result, nil
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
	}

	return nil, errors.Wrapf(lastErr, "%s failed after %d attempts", method, c.cfg.MaxRetries+1)
}

// backoff returns the delay before the given retry: initial, 2*initial, 4*initial... capped.
func (c *HTTPClient) backoff(attempt int) time.Duration {
	d := c.cfg.BackoffInitial << (attempt - 1)
	if d <= 0 || d > c.cfg.BackoffMax {
		return c.cfg.BackoffMax
	}
	return d
}

func (c *HTTPClient) doRequest(ctx context.Context, body []byte) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("HTTP %d", httpResp.StatusCode)
	}

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	var resp Response
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, errors.Wrap(err, "invalid JSON response")
	}

	return &resp, nil
}
