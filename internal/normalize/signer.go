package normalize

import "github.com/pkg/errors"

var SignerRequestFields = FieldTable{
	"id": NumberField,
}

// SignerRequest normalizes one entry of signer_requestsToConfirm. The id
// becomes a number and payload.transaction goes through Transaction; nothing
// else is touched. A nil request is returned as is.
func SignerRequest(request Record) (Record, error) {
	if request == nil {
		return nil, nil
	}

	out, err := SignerRequestFields.Apply("signer request", request)
	if err != nil {
		return nil, err
	}

	payload, ok := asRecord(out["payload"])
	if !ok {
		return out, nil
	}

	tx, ok := payload["transaction"]
	if !ok || tx == nil {
		return out, nil
	}

	txRec, ok := asRecord(tx)
	if !ok {
		return nil, errors.Wrapf(ErrNotRecord, "signer request payload.transaction is %T", tx)
	}

	normalized, err := Transaction(txRec)
	if err != nil {
		return nil, errors.Wrap(err, "signer request payload")
	}

	payload = clone(payload)
	payload["transaction"] = normalized
	out["payload"] = payload

	return out, nil
}
