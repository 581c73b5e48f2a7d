package cli

import (
	"fmt"
	"log/slog"

	"github.com/eshaffer321/fraudlens/internal/application/service"
	"github.com/eshaffer321/fraudlens/internal/domain/ledger"
	"github.com/eshaffer321/fraudlens/internal/infrastructure/charts"
	"github.com/eshaffer321/fraudlens/internal/infrastructure/config"
	"github.com/eshaffer321/fraudlens/internal/infrastructure/storage"
)

// NewQueryService loads the configured ledger and wires the query engine
// around it. A malformed ledger aborts startup.
func NewQueryService(cfg *config.Config, logger *slog.Logger) (*service.QueryService, error) {
	opts := storage.Options{
		Path:   cfg.Ledger.Path,
		Format: cfg.Ledger.Format,
		Table:  cfg.Ledger.Table,
	}

	l, err := storage.LoadLedger(opts)
	if err != nil {
		return nil, fmt.Errorf("load ledger %s: %w", cfg.Ledger.Path, err)
	}

	attrs := []any{"path", cfg.Ledger.Path, "transactions", l.Len()}
	if first, last, ok := l.Span(); ok {
		attrs = append(attrs, "first", ledger.FormatDate(first), "last", ledger.FormatDate(last))
	}
	logger.Info("ledger loaded", attrs...)

	svcOpts := service.DefaultOptions()
	svcOpts.CacheTTL = cfg.Cache.TTL
	svcOpts.CleanupInterval = cfg.Cache.CleanupInterval

	renderer := charts.NewRenderer(charts.DefaultConfig())
	return service.NewQueryService(l, renderer, svcOpts, logger), nil
}
