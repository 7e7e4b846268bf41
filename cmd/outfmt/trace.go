package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmagro/eth-rpc-outfmt/internal/normalize"
	"github.com/dmagro/eth-rpc-outfmt/internal/output"
)

var traceColumns = []output.Column{
	{Header: "Type", Path: "type"},
	{Header: "Path", Path: "traceAddress"},
	{Header: "From", Path: "action.from"},
	{Header: "To", Path: "action.to"},
	{Header: "Value", Path: "action.value"},
	{Header: "Gas Used", Path: "result.gasUsed"},
	{Header: "Created", Path: "result.address"},
}

func traceCmd(opts *globalOptions) *cobra.Command {
	var block string

	cmd := &cobra.Command{
		Use:   "trace [hash]",
		Short: "Fetch call traces for a transaction or a block",
		Long: `Fetch call traces with trace_transaction, or trace_block when --block is given.

The result address of contract creations is left as returned by the node unless
--trace-mode corrected (or normalize.trace_mode in the config) is set.

Examples:
  outfmt trace 0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b
  outfmt trace --block latest --trace-mode corrected`,
		Args: func(cmd *cobra.Command, args []string) error {
			if block == "" && len(args) != 1 {
				return fmt.Errorf("expected a transaction hash or --block")
			}
			if block != "" && len(args) != 0 {
				return fmt.Errorf("a transaction hash cannot be combined with --block")
			}
			return nil
		},
		RunE: runWith(opts, func(ctx context.Context, a *app, args []string) error {
			var (
				traces []normalize.Record
				title  string
			)
			meta, err := a.measure(ctx, func(ctx context.Context) (err error) {
				if block != "" {
					title = "Traces of block " + block
					traces, err = a.api.BlockTraces(ctx, block)
				} else {
					title = "Traces of " + args[0]
					traces, err = a.api.Traces(ctx, args[0])
				}
				return err
			})
			if err != nil {
				return fmt.Errorf("failed to fetch traces: %w", err)
			}
			return a.renderer.Records(title, traces, traceColumns, meta)
		}),
	}

	cmd.Flags().StringVar(&block, "block", "", "Trace every transaction in this block")
	return cmd
}
