// Package ethapi is a typed view of the node's JSON-RPC API. Every method
// issues one call, decodes the raw result with full numeric precision and
// hands it to the matching normalizer, so callers only ever see canonical
// records.
package ethapi

import (
	"bytes"
	"context"
	"encoding/json"
	"math/big"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/dmagro/eth-rpc-outfmt/internal/normalize"
	"github.com/dmagro/eth-rpc-outfmt/internal/rpc"
)

// ErrNotFound is returned when the node answers null for a single record
// (unknown block, transaction or receipt).
var ErrNotFound = errors.New("not found")

// maxConcurrentFetches bounds the fan-out in Transactions.
const maxConcurrentFetches = 8

type API struct {
	caller    rpc.Caller
	traceMode normalize.TraceMode
}

func New(caller rpc.Caller, traceMode normalize.TraceMode) *API {
	return &API{caller: caller, traceMode: traceMode}
}

// Provider returns the name of the underlying connection.
func (a *API) Provider() string { return a.caller.Name() }

func (a *API) BlockNumber(ctx context.Context) (*big.Int, error) {
	v, err := a.call(ctx, "eth_blockNumber")
	if err != nil {
		return nil, err
	}
	n, err := normalize.Number(v)
	if err != nil {
		return nil, errors.Wrap(err, "eth_blockNumber")
	}
	return n, nil
}

// Block fetches a block by number, tag or hash. With fullTx the transactions
// array holds full transaction objects instead of hashes; they are normalized
// too.
func (a *API) Block(ctx context.Context, tag string, fullTx bool) (normalize.Record, error) {
	method := "eth_getBlockByNumber"
	arg := rpc.NormalizeBlockArg(tag)
	if rpc.IsBlockHash(tag) {
		method = "eth_getBlockByHash"
	}

	rec, err := a.record(ctx, method, arg, fullTx)
	if err != nil {
		return nil, err
	}
	block, err := normalize.Block(rec)
	if err != nil {
		return nil, err
	}
	if !fullTx {
		return block, nil
	}

	txs, ok := block["transactions"].([]any)
	if !ok {
		return block, nil
	}
	normalized, err := normalize.Each(txs, normalize.Transaction)
	if err != nil {
		return nil, errors.Wrap(err, "block transactions")
	}
	out := make([]any, len(normalized))
	for i, tx := range normalized {
		out[i] = tx
	}
	block["transactions"] = out
	return block, nil
}

func (a *API) Transaction(ctx context.Context, hash string) (normalize.Record, error) {
	if err := rpc.ValidateHash(hash); err != nil {
		return nil, err
	}
	rec, err := a.record(ctx, "eth_getTransactionByHash", hash)
	if err != nil {
		return nil, errors.Wrapf(err, "transaction %s", hash)
	}
	return normalize.Transaction(rec)
}

// Transactions fetches hashes concurrently, preserving order. The first
// failure cancels the remaining fetches.
func (a *API) Transactions(ctx context.Context, hashes []string) ([]normalize.Record, error) {
	out := make([]normalize.Record, len(hashes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, hash := range hashes {
		g.Go(func() error {
			tx, err := a.Transaction(ctx, hash)
			if err != nil {
				return err
			}
			out[i] = tx
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *API) Receipt(ctx context.Context, hash string) (normalize.Record, error) {
	if err := rpc.ValidateHash(hash); err != nil {
		return nil, err
	}
	rec, err := a.record(ctx, "eth_getTransactionReceipt", hash)
	if err != nil {
		return nil, errors.Wrapf(err, "receipt %s", hash)
	}
	return normalize.Receipt(rec)
}

// LogFilter is the eth_getLogs filter object. Empty fields are omitted.
type LogFilter struct {
	FromBlock string
	ToBlock   string
	BlockHash string
	Addresses []string
	Topics    []string
}

func (f LogFilter) params() (map[string]any, error) {
	p := map[string]any{}
	if f.BlockHash != "" {
		if f.FromBlock != "" || f.ToBlock != "" {
			return nil, errors.New("blockHash cannot be combined with fromBlock/toBlock")
		}
		if err := rpc.ValidateHash(f.BlockHash); err != nil {
			return nil, err
		}
		p["blockHash"] = f.BlockHash
	}
	if f.FromBlock != "" {
		p["fromBlock"] = rpc.NormalizeBlockArg(f.FromBlock)
	}
	if f.ToBlock != "" {
		p["toBlock"] = rpc.NormalizeBlockArg(f.ToBlock)
	}
	if len(f.Addresses) > 0 {
		for _, addr := range f.Addresses {
			if err := rpc.ValidateAddress(addr); err != nil {
				return nil, err
			}
		}
		p["address"] = f.Addresses
	}
	if len(f.Topics) > 0 {
		topics := make([]any, len(f.Topics))
		for i, topic := range f.Topics {
			if topic == "" {
				continue // wildcard position
			}
			if err := rpc.ValidateHash(topic); err != nil {
				return nil, errors.Wrapf(err, "topic %d", i)
			}
			topics[i] = topic
		}
		p["topics"] = topics
	}
	return p, nil
}

func (a *API) Logs(ctx context.Context, filter LogFilter) ([]normalize.Record, error) {
	p, err := filter.params()
	if err != nil {
		return nil, err
	}
	items, err := a.list(ctx, "eth_getLogs", p)
	if err != nil {
		return nil, err
	}
	return normalize.Each(items, normalize.Log)
}

// Traces returns the call traces of one transaction.
func (a *API) Traces(ctx context.Context, hash string) ([]normalize.Record, error) {
	if err := rpc.ValidateHash(hash); err != nil {
		return nil, err
	}
	items, err := a.list(ctx, "trace_transaction", hash)
	if err != nil {
		return nil, err
	}
	return normalize.Each(items, normalize.WithTraceMode(a.traceMode))
}

// BlockTraces returns the traces of every transaction in a block.
func (a *API) BlockTraces(ctx context.Context, tag string) ([]normalize.Record, error) {
	items, err := a.list(ctx, "trace_block", rpc.NormalizeBlockArg(tag))
	if err != nil {
		return nil, err
	}
	return normalize.Each(items, normalize.WithTraceMode(a.traceMode))
}

// Peers always returns a record with active, connected and max, even when the
// node omits them.
func (a *API) Peers(ctx context.Context) (normalize.Record, error) {
	rec, err := a.record(ctx, "parity_netPeers")
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return normalize.Peers(rec)
}

// AccountsInfo returns name/uuid/meta per account, keyed by checksummed address.
func (a *API) AccountsInfo(ctx context.Context) (normalize.Record, error) {
	rec, err := a.record(ctx, "parity_allAccountsInfo")
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return normalize.AccountInfo(rec)
}

// SignerRequests returns the requests waiting for confirmation in the signer.
func (a *API) SignerRequests(ctx context.Context) ([]normalize.Record, error) {
	items, err := a.list(ctx, "signer_requestsToConfirm")
	if err != nil {
		return nil, err
	}
	return normalize.Each(items, normalize.SignerRequest)
}

// call issues method and decodes the result, keeping numbers as json.Number.
func (a *API) call(ctx context.Context, method string, params ...any) (any, error) {
	raw, err := a.caller.Call(ctx, method, params...)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s result", method)
	}
	return v, nil
}

func (a *API) record(ctx context.Context, method string, params ...any) (normalize.Record, error) {
	v, err := a.call(ctx, method, params...)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrNotFound
	}
	rec, ok := v.(map[string]any)
	if !ok {
		return nil, errors.Wrapf(normalize.ErrNotRecord, "%s result", method)
	}
	return rec, nil
}

// list is record for array results; null decodes as an empty list.
func (a *API) list(ctx context.Context, method string, params ...any) ([]any, error) {
	v, err := a.call(ctx, method, params...)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return []any{}, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, errors.Errorf("%s result: expected array, got %T", method, v)
	}
	return items, nil
}
