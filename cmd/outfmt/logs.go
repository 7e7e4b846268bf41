package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmagro/eth-rpc-outfmt/internal/ethapi"
	"github.com/dmagro/eth-rpc-outfmt/internal/normalize"
	"github.com/dmagro/eth-rpc-outfmt/internal/output"
)

var logColumns = []output.Column{
	{Header: "Block", Path: "blockNumber"},
	{Header: "Index", Path: "logIndex"},
	{Header: "Address", Path: "address"},
	{Header: "Tx", Path: "transactionHash"},
	{Header: "Data", Path: "data"},
}

func logsCmd(opts *globalOptions) *cobra.Command {
	var filter ethapi.LogFilter

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Query event logs",
		Long: `Query event logs with eth_getLogs.

Topics are positional; pass an empty --topic "" to match anything at a position.

Examples:
  outfmt logs --from 19000000 --to 19000010 --address 0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48
  outfmt logs --block-hash 0xb3b2...5a35 --topic 0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef`,
		Args: cobra.NoArgs,
		RunE: runWith(opts, func(ctx context.Context, a *app, _ []string) error {
			var logs []normalize.Record
			meta, err := a.measure(ctx, func(ctx context.Context) (err error) {
				logs, err = a.api.Logs(ctx, filter)
				return err
			})
			if err != nil {
				return fmt.Errorf("failed to fetch logs: %w", err)
			}
			return a.renderer.Records("Logs", logs, logColumns, meta)
		}),
	}

	cmd.Flags().StringVar(&filter.FromBlock, "from", "", "First block (number, hex or tag)")
	cmd.Flags().StringVar(&filter.ToBlock, "to", "", "Last block (number, hex or tag)")
	cmd.Flags().StringVar(&filter.BlockHash, "block-hash", "", "Restrict to a single block by hash")
	cmd.Flags().StringSliceVar(&filter.Addresses, "address", nil, "Emitting contract address (repeatable)")
	cmd.Flags().StringArrayVar(&filter.Topics, "topic", nil, "Topic at the next position (repeatable)")
	return cmd
}
