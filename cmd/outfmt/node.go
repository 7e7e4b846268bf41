package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmagro/eth-rpc-outfmt/internal/normalize"
	"github.com/dmagro/eth-rpc-outfmt/internal/output"
)

var accountColumns = []output.Column{
	{Header: "Address", Path: "address"},
	{Header: "Name", Path: "name"},
	{Header: "UUID", Path: "uuid"},
	{Header: "Meta", Path: "meta"},
}

var requestColumns = []output.Column{
	{Header: "ID", Path: "id"},
	{Header: "Origin", Path: "origin"},
	{Header: "From", Path: "payload.transaction.from"},
	{Header: "To", Path: "payload.transaction.to"},
	{Header: "Value", Path: "payload.transaction.value"},
	{Header: "Gas Price", Path: "payload.transaction.gasPrice"},
}

func peersCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "peers",
		Short: "Show peer counts",
		Args:  cobra.NoArgs,
		RunE: runWith(opts, func(ctx context.Context, a *app, _ []string) error {
			var peers normalize.Record
			meta, err := a.measure(ctx, func(ctx context.Context) (err error) {
				peers, err = a.api.Peers(ctx)
				return err
			})
			if err != nil {
				return fmt.Errorf("failed to fetch peers: %w", err)
			}
			return a.renderer.Record("Peers", peers, meta)
		}),
	}
}

func accountsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List accounts known to the node with their metadata",
		Args:  cobra.NoArgs,
		RunE: runWith(opts, func(ctx context.Context, a *app, _ []string) error {
			var accounts normalize.Record
			meta, err := a.measure(ctx, func(ctx context.Context) (err error) {
				accounts, err = a.api.AccountsInfo(ctx)
				return err
			})
			if err != nil {
				return fmt.Errorf("failed to fetch accounts: %w", err)
			}
			if !a.renderer.Terminal() {
				return a.renderer.Record("Accounts", accounts, meta)
			}
			return a.renderer.Records("Accounts", output.AccountRows(accounts), accountColumns, meta)
		}),
	}
}

func requestsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "requests",
		Short: "List requests waiting for confirmation in the signer",
		Args:  cobra.NoArgs,
		RunE: runWith(opts, func(ctx context.Context, a *app, _ []string) error {
			var requests []normalize.Record
			meta, err := a.measure(ctx, func(ctx context.Context) (err error) {
				requests, err = a.api.SignerRequests(ctx)
				return err
			})
			if err != nil {
				return fmt.Errorf("failed to fetch signer requests: %w", err)
			}
			return a.renderer.Records("Signer requests", requests, requestColumns, meta)
		}),
	}
}
