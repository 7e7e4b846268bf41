package output

import (
	"encoding/json"
	"io"
)

// JSONResult is the machine-readable envelope around every result.
type JSONResult struct {
	Provider  string `json:"provider"`
	LatencyMs int64  `json:"latencyMs"`
	Result    any    `json:"result"`
}

// writeJSON encodes result with its metadata. *big.Int values encode as JSON
// numbers and times as RFC 3339.
func writeJSON(w io.Writer, meta Meta, result any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(JSONResult{
		Provider:  meta.Provider,
		LatencyMs: meta.Latency.Milliseconds(),
		Result:    result,
	})
}
