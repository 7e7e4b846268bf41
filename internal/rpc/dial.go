package rpc

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// Dial returns a Caller for cfg.URL, choosing the transport by scheme:
// http/https use HTTPClient, ws/wss open a WSClient.
func Dial(ctx context.Context, cfg ClientConfig, logger *slog.Logger) (Caller, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, errors.Wrapf(err, "provider %s: invalid url", cfg.Name)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return NewHTTPClient(cfg, logger), nil
	case "ws", "wss":
		return DialWS(ctx, cfg, logger)
	default:
		return nil, errors.Errorf("provider %s: unsupported scheme %q", cfg.Name, u.Scheme)
	}
}
