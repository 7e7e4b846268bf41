package output

import (
	"encoding/json"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/dmagro/eth-rpc-outfmt/internal/normalize"
)

// maxCellWidth fits a checksummed address; hashes get shortened.
const maxCellWidth = 42

// formatValue renders a normalized value for display: quantities with
// thousand separators, dates in UTC, nested values as compact JSON.
func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "—"
	case *big.Int:
		if v == nil {
			return "—"
		}
		return formatWithCommas(v)
	case time.Time:
		return v.UTC().Format("2006-01-02 15:04:05 UTC")
	case string:
		return v
	case bool, json.Number, float64:
		return fmt.Sprint(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
}

// formatCell is formatValue shortened to fit a table column. Hashes and long
// hex strings keep their prefix and suffix.
func formatCell(v any) string {
	s := formatValue(v)
	if len(s) <= maxCellWidth {
		return s
	}
	if strings.HasPrefix(s, "0x") {
		return truncateHash(s)
	}
	return s[:maxCellWidth-3] + "..."
}

func formatWithCommas(n *big.Int) string {
	s := n.String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}

	var result []byte
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return sign + string(result)
}

func truncateHash(hash string) string {
	if len(hash) <= 14 {
		return hash
	}
	return hash[:10] + "..." + hash[len(hash)-6:]
}

// lookup resolves a dotted path through nested records. Missing segments
// yield nil.
func lookup(rec normalize.Record, path string) any {
	var cur any = rec
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[part]
	}
	return cur
}

// AccountRows flattens an AccountInfo result into one record per account so it
// can be rendered with Records, sorted by address.
func AccountRows(accounts normalize.Record) []normalize.Record {
	rows := make([]normalize.Record, 0, len(accounts))
	for address, v := range accounts {
		row := normalize.Record{"address": address}
		if info, ok := v.(map[string]any); ok {
			for k, field := range info {
				row[k] = field
			}
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i]["address"].(string) < rows[j]["address"].(string)
	})
	return rows
}
