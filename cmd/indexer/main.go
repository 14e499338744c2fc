package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"nounsIndexer/internal/chain"
	"nounsIndexer/internal/config"
	"nounsIndexer/internal/contracts"
	"nounsIndexer/internal/indexer"
	"nounsIndexer/internal/listener"
	"nounsIndexer/internal/metrics"
	"nounsIndexer/internal/registry"
	"nounsIndexer/internal/storage"
	"nounsIndexer/internal/storage/postgres"
)

func main() {
	root := &cobra.Command{
		Use:          "indexer",
		Short:        "Nouns DAO event indexer",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("index-dir", "./data/index", "directory holding one <Event>.json per event type")
	root.PersistentFlags().String("pg-dsn", "", "optional Postgres DSN for the event mirror")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	indexCmd := &cobra.Command{
		Use:   "index [event...]",
		Short: "Rebuild event indexes from the genesis block",
		RunE:  runMode(indexer.ModeIndex),
	}
	updateCmd := &cobra.Command{
		Use:   "update [event...]",
		Short: "Continue event indexes from their last indexed block",
		RunE:  runMode(indexer.ModeUpdate),
	}
	listenCmd := &cobra.Command{
		Use:   "listen [event...]",
		Short: "Catch up and keep appending live events until interrupted",
		RunE:  runMode(indexer.ModeListen),
	}
	for _, cmd := range []*cobra.Command{indexCmd, updateCmd, listenCmd} {
		addChainFlags(cmd)
		root.AddCommand(cmd)
	}

	root.AddCommand(&cobra.Command{
		Use:   "events [contract]",
		Short: "List supported event names by contract",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEvents,
	})
	root.AddCommand(&cobra.Command{
		Use:   "status [event...]",
		Short: "Show the last indexed block per event",
		RunE:  runStatus,
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addChainFlags(cmd *cobra.Command) {
	cmd.Flags().String("rpc", "", "Ethereum RPC URL")
	cmd.Flags().Uint64("genesis-block", config.DefaultGenesisBlock, "first block scanned by index")
	cmd.Flags().Uint64("batch-size", 1000, "blocks per batch")
	cmd.Flags().Int("max-retries", 5, "maximum retry attempts per chain query")
	cmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	cmd.Flags().Duration("query-timeout", 30*time.Second, "timeout of one chain query")
	cmd.Flags().String("finality", "latest", "head block tag (latest, safe, finalized)")
	cmd.Flags().Duration("poll-interval", 12*time.Second, "live log polling interval")
	cmd.Flags().Int("concurrency", 4, "event types processed in parallel")
	cmd.Flags().String("metrics-addr", "", "serve prometheus metrics on this address")
	cmd.Flags().String("auction-house", contracts.MainnetAddresses[contracts.AuctionHouse], "auction house address")
	cmd.Flags().String("governance", contracts.MainnetAddresses[contracts.GovernanceCore], "governor address")
	cmd.Flags().String("governance-data", contracts.MainnetAddresses[contracts.GovernanceData], "governor data address")
	cmd.Flags().String("token", contracts.MainnetAddresses[contracts.Token], "token address")
}

func runMode(mode indexer.Mode) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err := newLogger(cfg.LogLevel)
		if err != nil {
			return err
		}
		defer logger.Sync()

		if cfg.RPCURL == "" {
			return fmt.Errorf("rpc url is required")
		}
		finality, err := chain.ParseFinality(cfg.Finality)
		if err != nil {
			return err
		}

		reg, err := registry.New()
		if err != nil {
			return err
		}
		names, err := selectEvents(reg, args)
		if err != nil {
			return err
		}
		book, err := contracts.NewBook(cfg.Addresses)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
		if err != nil {
			return fmt.Errorf("connect rpc: %w", err)
		}
		defer chainClient.Close()

		chainID, err := chainClient.GetChainID(ctx)
		if err != nil {
			return fmt.Errorf("get chain id: %w", err)
		}
		for _, group := range contracts.Groups {
			if address, ok := book.Address(group); ok {
				logger.Debug("contract bound", zap.String("contract", group.String()), zap.String("address", address.Hex()))
			}
		}

		source := chain.NewEventSource(chainClient, book, chain.SourceConfig{
			Finality:     finality,
			PollInterval: cfg.PollInterval,
			MaxRange:     cfg.BatchSize,
		}, logger)
		store := storage.NewIndexStore(cfg.IndexDir, reg.DecodeRecord)

		hub := listener.NewHub(source, reg, logger)
		defer hub.Close()
		opts := []indexer.Option{indexer.WithListeners(hub)}

		if cfg.PGDSN != "" {
			mirror, err := postgres.NewStore(ctx, cfg.PGDSN)
			if err != nil {
				return fmt.Errorf("connect postgres: %w", err)
			}
			defer mirror.Close()
			if err := mirror.EnsureSchema(ctx); err != nil {
				return fmt.Errorf("ensure schema: %w", err)
			}
			opts = append(opts, indexer.WithMirror(mirror))
		}

		metricsServer := metrics.NewServer(cfg.MetricsAddr, logger)
		metricsServer.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metricsServer.Stop(shutdownCtx)
		}()

		ix := indexer.New(indexer.Config{
			GenesisBlock: cfg.GenesisBlock,
			BatchSize:    cfg.BatchSize,
			MaxRetries:   cfg.MaxRetries,
			RetryBackoff: cfg.RetryBackoff,
			QueryTimeout: cfg.QueryTimeout,
			Concurrency:  cfg.Concurrency,
		}, reg, source, store, logger, opts...)

		logger.Info("indexer start",
			zap.String("mode", string(mode)),
			zap.String("rpc", cfg.RPCURL),
			zap.String("chain_id", chainID.String()),
			zap.Int("events", len(names)),
			zap.Uint64("genesis_block", cfg.GenesisBlock),
			zap.Uint64("batch_size", cfg.BatchSize),
			zap.String("finality", string(finality)),
			zap.String("index_dir", cfg.IndexDir),
			zap.Bool("mirror", cfg.PGDSN != ""),
		)

		summary, err := ix.RunEvents(ctx, mode, names)
		for _, res := range summary.Failed() {
			logger.Error("event failed", zap.String("event", res.Event), zap.Error(res.Err))
		}
		logger.Info("indexer done",
			zap.Int("succeeded", len(summary.Succeeded())),
			zap.Int("failed", len(summary.Failed())),
			zap.Int("records", summary.Records()),
		)
		return err
	}
}

// selectEvents returns the requested names, or every registered name when none are given.
func selectEvents(reg *registry.Registry, args []string) ([]string, error) {
	if len(args) == 0 {
		return reg.Names(), nil
	}
	for _, name := range args {
		if _, err := reg.Resolve(name); err != nil {
			return nil, err
		}
	}
	return args, nil
}

func runEvents(cmd *cobra.Command, args []string) error {
	reg, err := registry.New()
	if err != nil {
		return err
	}

	groups := contracts.Groups
	if len(args) == 1 {
		group, err := contracts.ParseGroup(args[0])
		if err != nil {
			return err
		}
		groups = []contracts.Group{group}
	}

	out := cmd.OutOrStdout()
	for _, group := range groups {
		fmt.Fprintf(out, "%s (%s):\n", group, contracts.MainnetAddresses[group])
		for _, name := range reg.Group(group) {
			fmt.Fprintf(out, "  %s\n", name)
		}
	}
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	reg, err := registry.New()
	if err != nil {
		return err
	}
	names, err := selectEvents(reg, args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var mirror *postgres.Store
	if cfg.PGDSN != "" {
		mirror, err = postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer mirror.Close()
	}

	store := storage.NewIndexStore(cfg.IndexDir, reg.DecodeRecord)
	out := cmd.OutOrStdout()
	for _, name := range names {
		last, ok, err := store.Last(name)
		switch {
		case err != nil:
			fmt.Fprintf(out, "%-40s error: %v\n", name, err)
			continue
		case !ok:
			fmt.Fprintf(out, "%-40s not indexed", name)
		default:
			fmt.Fprintf(out, "%-40s %s", name, last)
		}
		if mirror != nil {
			block, found, err := mirror.LoadState(ctx, name)
			switch {
			case err != nil:
				fmt.Fprintf(out, "  mirror error: %v", err)
			case found:
				fmt.Fprintf(out, "  mirror %d", block)
			default:
				fmt.Fprint(out, "  mirror empty")
			}
		}
		fmt.Fprintln(out)
	}
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
