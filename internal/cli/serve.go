package cli

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eshaffer321/fraudlens/internal/api"
	"github.com/eshaffer321/fraudlens/internal/infrastructure/config"
	"github.com/eshaffer321/fraudlens/internal/infrastructure/logging"
)

// ServeFlags holds the CLI flags for the serve command.
type ServeFlags struct {
	Port       int
	ConfigPath string
	LedgerPath string
	Verbose    bool
}

// ParseServeFlags parses command line flags for the serve command.
func ParseServeFlags() *ServeFlags {
	flags := &ServeFlags{}
	flag.IntVar(&flags.Port, "port", 0, "Port to listen on (overrides config)")
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "Config file")
	flag.StringVar(&flags.LedgerPath, "ledger", "", "Ledger file (overrides config)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}

// ApplyServeFlags folds command line overrides into cfg.
func ApplyServeFlags(cfg *config.Config, flags *ServeFlags) {
	if flags.Port != 0 {
		cfg.Server.Port = flags.Port
	}
	if flags.LedgerPath != "" {
		cfg.Ledger.Path = flags.LedgerPath
	}
	if flags.Verbose {
		cfg.Observability.Logging.Level = "debug"
	}
}

// RunServe runs the API server.
func RunServe(cfg *config.Config, flags *ServeFlags) error {
	ApplyServeFlags(cfg, flags)
	logger := logging.NewLoggerWithSystem(cfg.Observability.Logging, "api")

	svc, err := NewQueryService(cfg, logger)
	if err != nil {
		return err
	}

	apiCfg := api.Config{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimit:      cfg.Server.RateLimit,
		Burst:          cfg.Server.Burst,
	}

	server, err := api.NewServer(apiCfg, svc, logger)
	if err != nil {
		return err
	}

	// Handle graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("received shutdown signal")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown error", slog.Any("error", err))
		}
		close(done)
	}()

	// Start server (blocks until shutdown)
	if err := server.Start(); err != nil {
		return err
	}

	<-done
	logger.Info("server stopped")
	return nil
}
