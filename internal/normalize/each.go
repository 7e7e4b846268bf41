package normalize

import "github.com/pkg/errors"

// Func is any single-record normalizer.
type Func func(Record) (Record, error)

// WithTraceMode adapts Trace to a Func.
func WithTraceMode(mode TraceMode) Func {
	return func(trace Record) (Record, error) {
		return Trace(trace, mode)
	}
}

// Each applies fn to every element of a JSON array and returns the results in
// order. null elements stay null; any other non-object element is an error.
func Each(items []any, fn Func) ([]Record, error) {
	out := make([]Record, len(items))
	for i, item := range items {
		if item == nil {
			continue
		}

		rec, ok := asRecord(item)
		if !ok {
			return nil, errors.Wrapf(ErrNotRecord, "element %d is %T", i, item)
		}

		normalized, err := fn(rec)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		out[i] = normalized
	}
	return out, nil
}
