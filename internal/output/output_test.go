package output

import (
	"bytes"
	"encoding/json"
	"math/big"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmagro/eth-rpc-outfmt/internal/normalize"
)

func init() {
	color.NoColor = true
}

const (
	address = "0x63Cf90D3f0410092FC0fca41846f596223979195"
	hash    = "0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b"
)

var meta = Meta{Provider: "local", Latency: 42 * time.Millisecond}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatTerminal, false},
		{"terminal", FormatTerminal, false},
		{"JSON", FormatJSON, false},
		{"yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecordJSON(t *testing.T) {
	var buf bytes.Buffer
	rec := normalize.Record{
		"number":    big.NewInt(12345),
		"miner":     address,
		"timestamp": time.Unix(1600000000, 0).UTC(),
		"hash":      hash,
	}

	require.NoError(t, New(&buf, FormatJSON).Record("Block", rec, meta))
	assert.JSONEq(t, `{
		"provider": "local",
		"latencyMs": 42,
		"result": {
			"number": 12345,
			"miner": "`+address+`",
			"timestamp": "2020-09-13T12:26:40Z",
			"hash": "`+hash+`"
		}
	}`, buf.String())
}

func TestRecordsJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatJSON).Records("Logs", nil, nil, meta))

	var out JSONResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, []any{}, out.Result)
}

func TestNumberJSONKeepsPrecision(t *testing.T) {
	var buf bytes.Buffer
	n, _ := new(big.Int).SetString("58750003716598352816469", 10)

	require.NoError(t, New(&buf, FormatJSON).Number("Total difficulty", n, Meta{}))
	assert.Contains(t, buf.String(), `"result": 58750003716598352816469`)
}

func TestRecordTerminal(t *testing.T) {
	var buf bytes.Buffer
	rec := normalize.Record{
		"number":    big.NewInt(24277534),
		"miner":     address,
		"timestamp": time.Unix(1600000000, 0).UTC(),
		"to":        nil,
	}

	require.NoError(t, New(&buf, FormatTerminal).Record("Block #24,277,534", rec, meta))
	out := buf.String()

	assert.Contains(t, out, "Block #24,277,534")
	assert.Contains(t, out, "24,277,534")
	assert.Contains(t, out, address)
	assert.Contains(t, out, "2020-09-13 12:26:40 UTC")
	assert.Contains(t, out, "—")
	assert.Contains(t, out, "Fetched via: local (42ms)")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("miner")), bytes.Index(buf.Bytes(), []byte("number")), "fields sorted")
}

func TestRecordsTerminal(t *testing.T) {
	var buf bytes.Buffer
	traces := []normalize.Record{
		{
			"type":   "call",
			"action": normalize.Record{"from": address, "value": big.NewInt(1000)},
			"result": normalize.Record{"gasUsed": big.NewInt(21000)},
		},
		{"type": "suicide"},
	}
	columns := []Column{
		{Header: "Type", Path: "type"},
		{Header: "From", Path: "action.from"},
		{Header: "Value", Path: "action.value"},
		{Header: "Gas Used", Path: "result.gasUsed"},
	}

	require.NoError(t, New(&buf, FormatTerminal).Records("Traces", traces, columns, Meta{}))
	out := buf.String()

	assert.Contains(t, out, "Traces (2)")
	assert.Contains(t, out, "Gas Used")
	assert.Contains(t, out, address)
	assert.Contains(t, out, "1,000")
	assert.Contains(t, out, "21,000")
	assert.Contains(t, out, "suicide")
	assert.NotContains(t, out, "Fetched via")
}

func TestRecordsTerminalEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatTerminal).Records("Signer requests", nil, nil, meta))
	assert.Contains(t, buf.String(), "Signer requests (0)")
	assert.Contains(t, buf.String(), "(none)")
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "—"},
		{"nil big", (*big.Int)(nil), "—"},
		{"small", big.NewInt(999), "999"},
		{"thousands", big.NewInt(1000), "1,000"},
		{"negative", big.NewInt(-1234567), "-1,234,567"},
		{"string", "0x", "0x"},
		{"bool", true, "true"},
		{"nested", normalize.Record{"a": big.NewInt(1)}, `{"a":1}`},
		{"list", []any{"x", nil}, `["x",null]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatValue(tt.in))
		})
	}
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, address, formatCell(address))
	assert.Equal(t, "0x88df0164...13944b", formatCell(hash))

	long := "abcdefghijklmnopqrstuvwxyzabcdefghijklmnopqrstuvwxyz"
	got := formatCell(long)
	assert.Len(t, got, maxCellWidth)
	assert.Equal(t, "...", got[len(got)-3:])
}

func TestLookup(t *testing.T) {
	rec := normalize.Record{"action": normalize.Record{"from": address}, "type": "call"}

	assert.Equal(t, address, lookup(rec, "action.from"))
	assert.Equal(t, "call", lookup(rec, "type"))
	assert.Nil(t, lookup(rec, "result.gasUsed"))
	assert.Nil(t, lookup(rec, "type.nested"))
}

func TestAccountRows(t *testing.T) {
	accounts := normalize.Record{
		"0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045": normalize.Record{"name": "vitalik", "uuid": "2"},
		address: normalize.Record{"name": "main", "uuid": "1", "meta": map[string]any{}},
	}

	rows := AccountRows(accounts)
	require.Len(t, rows, 2)
	assert.Equal(t, address, rows[0]["address"])
	assert.Equal(t, "main", rows[0]["name"])
	assert.Equal(t, "vitalik", rows[1]["name"])
}
