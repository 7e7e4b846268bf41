package normalize

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/dmagro/eth-rpc-outfmt/internal/checksum"
)

var (
	BlockFields = FieldTable{
		"author":          AddressField,
		"miner":           AddressField,
		"difficulty":      NumberField,
		"gasLimit":        NumberField,
		"gasUsed":         NumberField,
		"nonce":           NumberField,
		"number":          NumberField,
		"totalDifficulty": NumberField,
		"timestamp":       DateField,
	}

	LogFields = FieldTable{
		"address":          AddressField,
		"blockNumber":      NumberField,
		"logIndex":         NumberField,
		"transactionIndex": NumberField,
	}

	PeersFields = FieldTable{
		"active":    NumberField,
		"connected": NumberField,
		"max":       NumberField,
	}

	ReceiptFields = FieldTable{
		"contractAddress":   AddressField,
		"blockNumber":       NumberField,
		"cumulativeGasUsed": NumberField,
		"gasUsed":           NumberField,
		"transactionIndex":  NumberField,
	}

	TransactionFields = FieldTable{
		"creates":          AddressField,
		"from":             AddressField,
		"to":               AddressField,
		"blockNumber":      NumberField,
		"gasPrice":         NumberField,
		"gas":              NumberField,
		"nonce":            NumberField,
		"transactionIndex": NumberField,
		"value":            NumberField,
	}
)

// Block normalizes an eth_getBlockBy* result. A nil block is returned as is.
func Block(block Record) (Record, error) {
	if block == nil {
		return nil, nil
	}
	return BlockFields.Apply("block", block)
}

// Log normalizes a single eth_getLogs entry. A nil log is returned as is.
func Log(log Record) (Record, error) {
	if log == nil {
		return nil, nil
	}
	return LogFields.Apply("log", log)
}

// Receipt normalizes an eth_getTransactionReceipt result. A nil receipt is returned as is.
func Receipt(receipt Record) (Record, error) {
	if receipt == nil {
		return nil, nil
	}
	return ReceiptFields.Apply("receipt", receipt)
}

// Transaction normalizes an eth_getTransactionBy* result. A nil transaction is returned as is.
func Transaction(tx Record) (Record, error) {
	if tx == nil {
		return nil, nil
	}
	return TransactionFields.Apply("transaction", tx)
}

// Peers normalizes a parity_netPeers result.
//
// Unlike the other normalizers the output always has exactly the three
// counters, each defaulting to zero; every other input field is dropped.
func Peers(peers Record) (Record, error) {
	out := make(Record, len(PeersFields))
	for field := range PeersFields {
		n, err := Number(peers[field])
		if err != nil {
			return nil, errors.Wrapf(err, "peers field %q", field)
		}
		out[field] = n
	}
	return out, nil
}

// AccountInfo normalizes a parity_allAccountsInfo result, a map from address
// to {name, uuid, meta}.
//
// The returned map is keyed by checksummed address and is never nil. Each
// entry carries name and uuid unchanged and meta decoded from its JSON string
// form. A meta that is missing or not valid JSON fails the whole call.
func AccountInfo(infos Record) (Record, error) {
	out := make(Record, len(infos))

	for address, value := range infos {
		info, ok := asRecord(value)
		if !ok {
			return nil, errors.Wrapf(ErrNotRecord, "account %s", address)
		}

		meta, err := parseMeta(info["meta"])
		if err != nil {
			return nil, errors.Wrapf(err, "account %s", address)
		}

		out[checksum.Address(address)] = Record{
			"name": info["name"],
			"uuid": info["uuid"],
			"meta": meta,
		}
	}

	return out, nil
}

func parseMeta(v any) (any, error) {
	raw, ok := v.(string)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidMeta, "expected JSON string, got %T", v)
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var meta any
	if err := dec.Decode(&meta); err != nil {
		return nil, errors.Wrapf(ErrInvalidMeta, "%v", err)
	}
	if dec.More() {
		return nil, errors.Wrap(ErrInvalidMeta, "trailing data after JSON value")
	}
	return meta, nil
}
