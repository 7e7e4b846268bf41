// Command outfmt queries a node's JSON-RPC API and prints the results in
// canonical form: checksummed addresses, decimal quantities and UTC dates.
//
// Usage:
//
//	outfmt block latest
//	outfmt tx 0x88df...944b --format json
//	outfmt trace --block 19000000 --trace-mode corrected
//	outfmt requests --provider signer
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

type globalOptions struct {
	cfgPath   string
	envFile   string
	provider  string
	format    string
	traceMode string
	noColor   bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "outfmt",
		Short:         "Fetch and normalize Ethereum JSON-RPC results",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.cfgPath, "config", "config/providers.yaml", "Config file path")
	pf.StringVar(&opts.envFile, "env-file", ".env", "Environment file loaded before the config")
	pf.StringVar(&opts.provider, "provider", "", "Provider name (default: defaults.provider from config)")
	pf.StringVar(&opts.format, "format", "terminal", "Output format: terminal|json")
	pf.StringVar(&opts.traceMode, "trace-mode", "", "Trace result address handling: legacy|corrected (default: from config)")
	pf.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		headCmd(opts),
		blockCmd(opts),
		txCmd(opts),
		receiptCmd(opts),
		logsCmd(opts),
		traceCmd(opts),
		peersCmd(opts),
		accountsCmd(opts),
		requestsCmd(opts),
	)

	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
