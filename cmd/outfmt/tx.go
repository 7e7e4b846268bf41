package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmagro/eth-rpc-outfmt/internal/normalize"
	"github.com/dmagro/eth-rpc-outfmt/internal/output"
)

var txColumns = []output.Column{
	{Header: "Hash", Path: "hash"},
	{Header: "Block", Path: "blockNumber"},
	{Header: "From", Path: "from"},
	{Header: "To", Path: "to"},
	{Header: "Value", Path: "value"},
	{Header: "Nonce", Path: "nonce"},
}

func txCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tx <hash>...",
		Short: "Fetch one or more transactions",
		Long: `Fetch transactions by hash. Several hashes are fetched concurrently and
printed as a table.

Examples:
  outfmt tx 0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b
  outfmt tx <hash1> <hash2> <hash3> --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runWith(opts, func(ctx context.Context, a *app, hashes []string) error {
			if len(hashes) == 1 {
				var tx normalize.Record
				meta, err := a.measure(ctx, func(ctx context.Context) (err error) {
					tx, err = a.api.Transaction(ctx, hashes[0])
					return err
				})
				if err != nil {
					return fmt.Errorf("failed to fetch transaction: %w", err)
				}
				return a.renderer.Record("Transaction "+hashes[0], tx, meta)
			}

			var txs []normalize.Record
			meta, err := a.measure(ctx, func(ctx context.Context) (err error) {
				txs, err = a.api.Transactions(ctx, hashes)
				return err
			})
			if err != nil {
				return fmt.Errorf("failed to fetch transactions: %w", err)
			}
			return a.renderer.Records("Transactions", txs, txColumns, meta)
		}),
	}
}

func receiptCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "receipt <hash>",
		Short: "Fetch a transaction receipt",
		Args:  cobra.ExactArgs(1),
		RunE: runWith(opts, func(ctx context.Context, a *app, args []string) error {
			var receipt normalize.Record
			meta, err := a.measure(ctx, func(ctx context.Context) (err error) {
				receipt, err = a.api.Receipt(ctx, args[0])
				return err
			})
			if err != nil {
				return fmt.Errorf("failed to fetch receipt: %w", err)
			}
			return a.renderer.Record("Receipt "+args[0], receipt, meta)
		}),
	}
}
