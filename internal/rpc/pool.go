package rpc

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pkg/errors"
)

// ClientPool hands out one Caller per provider name and reuses it across
// commands. Reads take the shared lock; creation is double-checked under the
// exclusive lock so concurrent callers never dial the same provider twice.
type ClientPool struct {
	clients map[string]Caller
	mu      sync.RWMutex
	logger  *slog.Logger
}

func NewClientPool(logger *slog.Logger) *ClientPool {
	return &ClientPool{
		clients: make(map[string]Caller),
		logger:  logger,
	}
}

// GetOrCreate returns the Caller registered under cfg.Name, dialing it first
// if needed.
func (p *ClientPool) GetOrCreate(ctx context.Context, cfg ClientConfig) (Caller, error) {
	p.mu.RLock()
	if client, exists := p.clients[cfg.Name]; exists {
		p.mu.RUnlock()
		return client, nil
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	if client, exists := p.clients[cfg.Name]; exists {
		return client, nil
	}

	client, err := Dial(ctx, cfg, p.logger)
	if err != nil {
		return nil, err
	}
	p.clients[cfg.Name] = client
	return client, nil
}

// Close closes every Caller and empties the pool. The first error is returned.
func (p *ClientPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var first error
	for name, client := range p.clients {
		if err := client.Close(); err != nil && first == nil {
			first = errors.Wrapf(err, "close %s", name)
		}
	}
	p.clients = make(map[string]Caller)
	return first
}
