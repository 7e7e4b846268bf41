package main

import (
	"context"
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/dmagro/eth-rpc-outfmt/internal/normalize"
	"github.com/dmagro/eth-rpc-outfmt/internal/output"
)

func headCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "head",
		Short: "Print the latest block number",
		Args:  cobra.NoArgs,
		RunE: runWith(opts, func(ctx context.Context, a *app, _ []string) error {
			var n *big.Int
			meta, err := a.measure(ctx, func(ctx context.Context) (err error) {
				n, err = a.api.BlockNumber(ctx)
				return err
			})
			if err != nil {
				return err
			}
			return a.renderer.Number("Latest block", n, meta)
		}),
	}
}

func blockCmd(opts *globalOptions) *cobra.Command {
	var fullTx bool

	cmd := &cobra.Command{
		Use:   "block [latest|number|hash]",
		Short: "Fetch and display a block",
		Long: `Fetch a block by tag, number or hash and print it normalized.

Examples:
  outfmt block
  outfmt block 19000000
  outfmt block 0x121eac0 --full
  outfmt block 0xb3b20624f8f0f86eb50dd04688409e5cea4bd02d700bf6e79e9384d47d6a5a35`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWith(opts, func(ctx context.Context, a *app, args []string) error {
			tag := "latest"
			if len(args) == 1 {
				tag = args[0]
			}

			var block normalize.Record
			meta, err := a.measure(ctx, func(ctx context.Context) (err error) {
				block, err = a.api.Block(ctx, tag, fullTx)
				return err
			})
			if err != nil {
				return fmt.Errorf("failed to fetch block %s: %w", tag, err)
			}

			title := "Block " + tag
			if n, ok := block["number"].(*big.Int); ok {
				title = "Block #" + n.String()
			}
			if !fullTx || !a.renderer.Terminal() {
				return a.renderer.Record(title, block, meta)
			}
			if err := a.renderer.Record(title, withoutTransactions(block), meta); err != nil {
				return err
			}
			return a.renderer.Records("Transactions", transactionsOf(block), txColumns, output.Meta{})
		}),
	}

	cmd.Flags().BoolVar(&fullTx, "full", false, "Include full transaction objects")
	return cmd
}

// withoutTransactions drops the transactions list, which --full prints as its
// own table.
func withoutTransactions(block normalize.Record) normalize.Record {
	out := make(normalize.Record, len(block))
	for k, v := range block {
		if k != "transactions" {
			out[k] = v
		}
	}
	return out
}

func transactionsOf(block normalize.Record) []normalize.Record {
	txs, _ := block["transactions"].([]any)
	out := make([]normalize.Record, 0, len(txs))
	for _, tx := range txs {
		if rec, ok := tx.(map[string]any); ok {
			out = append(out, rec)
		}
	}
	return out
}
