package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/eshaffer321/fraudlens/internal/cli"
	"github.com/eshaffer321/fraudlens/internal/infrastructure/config"
	"github.com/eshaffer321/fraudlens/internal/infrastructure/logging"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	flags, err := cli.ParseQueryFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	cfg := config.LoadOrEnvWithPath(flags.ConfigPath)
	if flags.LedgerPath != "" {
		cfg.Ledger.Path = flags.LedgerPath
	}
	logCfg := cfg.Observability.Logging
	if flags.Verbose {
		logCfg.Level = "debug"
	} else {
		logCfg.Level = "warn"
	}
	logger := logging.NewLoggerTo(os.Stderr, logCfg).With("system", "query")

	svc, err := cli.NewQueryService(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.RunQuery(ctx, svc, flags, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
