// Package normalize turns raw JSON-RPC results into canonical values.
//
// Every normalizer takes a decoded JSON object (a Record) and returns a new
// Record in which known fields are converted:
//
//   - hex or decimal quantities become *big.Int
//   - addresses become EIP-55 checksummed strings
//   - unix timestamps become time.Time (UTC)
//
// Fields a normalizer does not know about are copied through untouched. The
// input is never modified: records and slices that receive converted values
// are cloned first, everything else is shared with the input.
package normalize

import (
	"github.com/pkg/errors"
)

// Record is a decoded JSON object.
type Record = map[string]any

// Kind selects the conversion applied to a field.
type Kind int

const (
	PassThrough Kind = iota
	AddressField
	NumberField
	DateField
)

func (k Kind) String() string {
	switch k {
	case AddressField:
		return "address"
	case NumberField:
		return "number"
	case DateField:
		return "date"
	default:
		return "passthrough"
	}
}

// FieldTable maps field names to the conversion they receive. Fields missing
// from the table pass through.
type FieldTable map[string]Kind

// Kind returns the conversion for field.
func (t FieldTable) Kind(field string) Kind {
	return t[field]
}

// convert applies a single conversion kind to v.
func (k Kind) convert(v any) (any, error) {
	switch k {
	case AddressField:
		return Address(v)
	case NumberField:
		return Number(v)
	case DateField:
		return Date(v)
	default:
		return v, nil
	}
}

// Apply returns a copy of rec with every field listed in table converted.
// shape names the record in error messages.
func (t FieldTable) Apply(shape string, rec Record) (Record, error) {
	out := clone(rec)
	if err := t.applyInPlace(shape, out); err != nil {
		return nil, err
	}
	return out, nil
}

// applyInPlace converts the fields of an already cloned record.
func (t FieldTable) applyInPlace(shape string, rec Record) error {
	for field, value := range rec {
		kind := t.Kind(field)
		if kind == PassThrough {
			continue
		}

		converted, err := kind.convert(value)
		if err != nil {
			return errors.Wrapf(err, "%s field %q", shape, field)
		}
		rec[field] = converted
	}
	return nil
}

func clone(rec Record) Record {
	if rec == nil {
		return nil
	}
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}

// asRecord reports whether v is a JSON object.
func asRecord(v any) (Record, bool) {
	rec, ok := v.(map[string]any)
	return rec, ok && rec != nil
}
