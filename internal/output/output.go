// Package output renders normalized records for the CLI, either as indented
// JSON or as colored terminal tables.
package output

import (
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/errors"

	"github.com/dmagro/eth-rpc-outfmt/internal/normalize"
)

type Format string

const (
	FormatTerminal Format = "terminal"
	FormatJSON     Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatTerminal:
		return FormatTerminal, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", errors.Errorf("invalid format %q (expected terminal or json)", s)
	}
}

// Meta describes where a result came from.
type Meta struct {
	Provider string
	Latency  time.Duration
}

// Column selects a value for a table column by dotted path ("action.from").
type Column struct {
	Header string
	Path   string
}

// Renderer writes results in one format to w.
type Renderer struct {
	w      io.Writer
	format Format
}

func New(w io.Writer, format Format) *Renderer {
	return &Renderer{w: w, format: format}
}

// Terminal reports whether output is meant for a human.
func (r *Renderer) Terminal() bool {
	return r.format == FormatTerminal
}

// Record renders a single record. Terminal output lists every field.
func (r *Renderer) Record(title string, rec normalize.Record, meta Meta) error {
	if r.format == FormatJSON {
		return writeJSON(r.w, meta, rec)
	}
	renderRecord(r.w, title, rec, meta)
	return nil
}

// Records renders a list. Terminal output is a table of the given columns.
func (r *Renderer) Records(title string, recs []normalize.Record, columns []Column, meta Meta) error {
	if r.format == FormatJSON {
		if recs == nil {
			recs = []normalize.Record{}
		}
		return writeJSON(r.w, meta, recs)
	}
	renderTable(r.w, title, recs, columns, meta)
	return nil
}

// Number renders a single quantity such as a block number.
func (r *Renderer) Number(title string, n *big.Int, meta Meta) error {
	if r.format == FormatJSON {
		return writeJSON(r.w, meta, n)
	}
	renderNumber(r.w, title, n, meta)
	return nil
}

// DisableColors turns off color output (for non-TTY output or --no-color).
func DisableColors() {
	color.NoColor = true
}
