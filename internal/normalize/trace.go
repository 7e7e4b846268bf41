package normalize

import (
	"strings"

	"github.com/pkg/errors"
)

// TraceMode selects how a trace result's "address" field is handled.
type TraceMode int

const (
	// TraceModeLegacy reproduces the historical behavior: result.address is
	// left exactly as the node sent it, and action.address is rewritten from
	// itself. A create action carries no address, so it gains a nil one.
	TraceModeLegacy TraceMode = iota
	// TraceModeCorrected checksums result.address itself.
	TraceModeCorrected
)

func (m TraceMode) String() string {
	switch m {
	case TraceModeCorrected:
		return "corrected"
	default:
		return "legacy"
	}
}

// ParseTraceMode reads a mode name; the empty string selects TraceModeLegacy.
func ParseTraceMode(s string) (TraceMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy", "strict":
		return TraceModeLegacy, nil
	case "corrected", "fixed":
		return TraceModeCorrected, nil
	default:
		return TraceModeLegacy, errors.Errorf("unknown trace mode %q (expected legacy or corrected)", s)
	}
}

var (
	TraceActionFields = FieldTable{
		"from":          AddressField,
		"to":            AddressField,
		"address":       AddressField,
		"refundAddress": AddressField,
		"gas":           NumberField,
		"value":         NumberField,
		"balance":       NumberField,
	}

	TraceResultFields = FieldTable{
		"gasUsed": NumberField,
	}

	TraceFields = FieldTable{
		"subtraces":           NumberField,
		"transactionPosition": NumberField,
		"blockNumber":         NumberField,
	}
)

// Trace normalizes a single trace_* entry. A nil trace is returned as is.
//
// The action and result sub-records, the traceAddress path and the top-level
// counters are converted independently; a missing region does not affect the
// others.
func Trace(trace Record, mode TraceMode) (Record, error) {
	if trace == nil {
		return nil, nil
	}

	out, err := TraceFields.Apply("trace", trace)
	if err != nil {
		return nil, err
	}

	if rec, ok := asRecord(out["action"]); ok {
		action, err := TraceActionFields.Apply("trace action", rec)
		if err != nil {
			return nil, err
		}
		out["action"] = action
	}

	if rec, ok := asRecord(out["result"]); ok {
		result, err := TraceResultFields.Apply("trace result", rec)
		if err != nil {
			return nil, err
		}

		if addr, ok := result["address"]; ok {
			switch mode {
			case TraceModeCorrected:
				if result["address"], err = Address(addr); err != nil {
					return nil, errors.Wrap(err, `trace result field "address"`)
				}
			default:
				// result.address stays raw; the checksummed value lands on
				// the action, which for creates is nil.
				if action, ok := out["action"].(Record); ok {
					if action["address"], err = Address(action["address"]); err != nil {
						return nil, errors.Wrap(err, `trace action field "address"`)
					}
				}
			}
		}
		out["result"] = result
	}

	if path, ok := out["traceAddress"].([]any); ok {
		converted := make([]any, len(path))
		for i, step := range path {
			n, err := Number(step)
			if err != nil {
				return nil, errors.Wrapf(err, "trace traceAddress[%d]", i)
			}
			converted[i] = n
		}
		out["traceAddress"] = converted
	}

	return out, nil
}
