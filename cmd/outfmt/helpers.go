package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dmagro/eth-rpc-outfmt/internal/checksum"
	"github.com/dmagro/eth-rpc-outfmt/internal/config"
	"github.com/dmagro/eth-rpc-outfmt/internal/env"
	"github.com/dmagro/eth-rpc-outfmt/internal/ethapi"
	"github.com/dmagro/eth-rpc-outfmt/internal/log"
	"github.com/dmagro/eth-rpc-outfmt/internal/normalize"
	"github.com/dmagro/eth-rpc-outfmt/internal/output"
	"github.com/dmagro/eth-rpc-outfmt/internal/rpc"
)

// app is everything a subcommand needs, built from the global flags.
type app struct {
	logger   *slog.Logger
	pool     *rpc.ClientPool
	api      *ethapi.API
	renderer *output.Renderer
}

func newApp(cmd *cobra.Command, opts *globalOptions) (*app, error) {
	if err := env.Load(opts.envFile); err != nil {
		return nil, err
	}

	cfg, err := config.Load(opts.cfgPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel(), cfg.Log.Format)
	for _, w := range cfg.Warnings() {
		logger.Warn(w)
	}

	format, err := output.ParseFormat(opts.format)
	if err != nil {
		return nil, err
	}
	if opts.noColor || format == output.FormatJSON {
		output.DisableColors()
	}

	traceMode := cfg.TraceMode()
	if opts.traceMode != "" {
		if traceMode, err = normalize.ParseTraceMode(opts.traceMode); err != nil {
			return nil, err
		}
	}

	checksum.Resize(cfg.Normalize.AddressCacheSize)

	provider, err := cfg.Provider(opts.provider)
	if err != nil {
		return nil, err
	}
	logger.Debug("provider selected", "provider", provider.Name, "url", provider.URL, "trace_mode", traceMode)

	pool := rpc.NewClientPool(logger)
	caller, err := pool.GetOrCreate(cmd.Context(), cfg.ClientConfig(provider))
	if err != nil {
		return nil, err
	}

	return &app{
		logger:   logger,
		pool:     pool,
		api:      ethapi.New(caller, traceMode),
		renderer: output.New(cmd.OutOrStdout(), format),
	}, nil
}

func (a *app) Close() {
	if err := a.pool.Close(); err != nil {
		a.logger.Debug("failed to close provider", "error", err)
	}
}

// measure runs fn and returns the metadata shown next to its result.
func (a *app) measure(ctx context.Context, fn func(context.Context) error) (output.Meta, error) {
	start := time.Now()
	err := fn(ctx)
	return output.Meta{Provider: a.api.Provider(), Latency: time.Since(start)}, err
}

// runWith builds the app, runs fn and releases the connection.
func runWith(opts *globalOptions, fn func(ctx context.Context, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, opts)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd.Context(), a, args)
	}
}
