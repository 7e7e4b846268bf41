package output

import (
	"fmt"
	"io"
	"math/big"
	"sort"

	"github.com/fatih/color"
	"github.com/rodaine/table"

	"github.com/dmagro/eth-rpc-outfmt/internal/normalize"
)

var (
	cyan = color.New(color.FgCyan).SprintFunc()
	bold = color.New(color.Bold).SprintFunc()
	dim  = color.New(color.Faint).SprintFunc()
)

const rule = "═══════════════════════════════════════════════════════"

func renderHeader(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, bold(title))
	fmt.Fprintln(w, rule)
}

func renderFooter(w io.Writer, meta Meta) {
	if meta.Provider == "" {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s %s (%dms)\n", cyan("Fetched via:"), meta.Provider, meta.Latency.Milliseconds())
	fmt.Fprintln(w)
}

// renderRecord prints one field per row, keys sorted.
func renderRecord(w io.Writer, title string, rec normalize.Record, meta Meta) {
	renderHeader(w, title)

	if len(rec) == 0 {
		fmt.Fprintf(w, "  %s\n", dim("(empty)"))
		renderFooter(w, meta)
		return
	}

	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tbl := table.New("Field", "Value").WithWriter(w)
	tbl.WithHeaderFormatter(color.New(color.FgCyan, color.Underline).SprintfFunc())
	tbl.WithFirstColumnFormatter(color.New(color.FgCyan).SprintfFunc())
	for _, k := range keys {
		tbl.AddRow(k, formatValue(rec[k]))
	}
	tbl.Print()

	renderFooter(w, meta)
}

func renderTable(w io.Writer, title string, recs []normalize.Record, columns []Column, meta Meta) {
	renderHeader(w, fmt.Sprintf("%s (%d)", title, len(recs)))

	if len(recs) == 0 {
		fmt.Fprintf(w, "  %s\n", dim("(none)"))
		renderFooter(w, meta)
		return
	}

	headers := make([]any, len(columns))
	for i, c := range columns {
		headers[i] = c.Header
	}
	tbl := table.New(headers...).WithWriter(w)
	tbl.WithHeaderFormatter(color.New(color.FgCyan, color.Underline).SprintfFunc())

	for _, rec := range recs {
		row := make([]any, len(columns))
		for i, c := range columns {
			row[i] = formatCell(lookup(rec, c.Path))
		}
		tbl.AddRow(row...)
	}
	tbl.Print()

	renderFooter(w, meta)
}

func renderNumber(w io.Writer, title string, n *big.Int, meta Meta) {
	renderHeader(w, title)
	fmt.Fprintf(w, "  %s\n", formatValue(n))
	renderFooter(w, meta)
}
