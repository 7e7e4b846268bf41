// Package rpc implements the JSON-RPC 2.0 transports used to talk to a node
// and its signer.
//
// Every call returns the raw "result" member as json.RawMessage. Decoding and
// normalizing it is left to the caller (see internal/ethapi), which knows what
// shape to expect for each method.
package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Request is a JSON-RPC 2.0 request.
//
//	{"jsonrpc": "2.0", "method": "eth_blockNumber", "params": [], "id": 1}
type Request struct {
	JSONRPC string `json:"jsonrpc"` // Always "2.0"
	Method  string `json:"method"`
	Params  []any  `json:"params"` // Never null: nodes reject "params": null
	ID      uint64 `json:"id"`
}

// Response is a JSON-RPC 2.0 response.
//
// Result is kept as raw bytes because its shape depends on the method: a hex
// string for eth_blockNumber, an object for eth_getBlockByNumber, an array for
// eth_getLogs. Error is nil on success.
//
// Subscription notifications arriving on a WebSocket carry no id and decode
// with ID == 0; request ids start at 1 so they never collide.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError is an error reported by the node itself.
//
// Standard codes:
//
//	-32700  Parse error
//	-32600  Invalid request
//	-32601  Method not found
//	-32602  Invalid params
//	-32603  Internal error
//
// Nodes add their own (e.g. -32000 for execution errors, -32040 for signer
// rejections). These are answers, not transport failures, so they are never
// retried.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// Caller is a JSON-RPC connection to one provider.
type Caller interface {
	// Name identifies the provider in logs and output.
	Name() string
	// Call invokes method and returns the raw result.
	Call(ctx context.Context, method string, params ...any) (json.RawMessage, error)
	// Close releases the underlying connection.
	Close() error
}

// ClientConfig configures a Caller.
type ClientConfig struct {
	Name           string
	URL            string
	Timeout        time.Duration // Per-request timeout
	MaxRetries     int           // Retry attempts after the first, HTTP only
	BackoffInitial time.Duration // First retry delay, doubled each attempt
	BackoffMax     time.Duration // Upper bound for a single delay
}

const (
	defaultTimeout        = 10 * time.Second
	defaultBackoffInitial = 100 * time.Millisecond
	defaultBackoffMax     = 2 * time.Second
)

func (c ClientConfig) withDefaults() ClientConfig {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.BackoffInitial <= 0 {
		c.BackoffInitial = defaultBackoffInitial
	}
	if c.BackoffMax <= 0 {
		c.BackoffMax = defaultBackoffMax
	}
	return c
}

func newRequest(id uint64, method string, params []any) Request {
	if params == nil {
		params = []any{}
	}
	return Request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      id,
	}
}
