// Package service wires the ledger query engine together: point lookups and
// range reports over one immutable ledger.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/eshaffer321/fraudlens/internal/domain/aggregator"
	"github.com/eshaffer321/fraudlens/internal/domain/ledger"
	"github.com/eshaffer321/fraudlens/internal/domain/matcher"
	"github.com/eshaffer321/fraudlens/internal/domain/rangefilter"
	"github.com/eshaffer321/fraudlens/internal/domain/report"
)

// InvalidDateError reports a range query date that could not be parsed.
type InvalidDateError struct {
	Field string
	Value string
	Err   error
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *InvalidDateError) Unwrap() error {
	return e.Err
}

// Options configures a QueryService.
type Options struct {
	Matcher         matcher.Config
	CacheTTL        time.Duration // 0 disables report caching
	CleanupInterval time.Duration
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		Matcher:         matcher.DefaultConfig(),
		CacheTTL:        10 * time.Minute,
		CleanupInterval: 20 * time.Minute,
	}
}

// QueryService answers point and range queries. It is safe for concurrent
// use: the ledger is read-only and the report cache is synchronized.
type QueryService struct {
	ledger   *ledger.Ledger
	matcher  *matcher.Matcher
	renderer report.ChartRenderer
	reports  *cache.Cache
	logger   *slog.Logger
}

// NewQueryService creates a service over l.
func NewQueryService(l *ledger.Ledger, renderer report.ChartRenderer, opts Options, logger *slog.Logger) *QueryService {
	if logger == nil {
		logger = slog.Default()
	}

	s := &QueryService{
		ledger:   l,
		matcher:  matcher.NewMatcher(opts.Matcher),
		renderer: renderer,
		logger:   logger,
	}
	if opts.CacheTTL > 0 {
		s.reports = cache.New(opts.CacheTTL, opts.CleanupInterval)
	}
	return s
}

// Ledger returns the ledger the service reads from.
func (s *QueryService) Ledger() *ledger.Ledger {
	return s.ledger
}

// PointQuery looks up a single transaction. A *matcher.InvalidInputError is
// returned for malformed input; NoMatch is a result, not an error.
func (s *QueryService) PointQuery(ctx context.Context, merchantID, amount string) (matcher.MatchResult, error) {
	result, err := s.matcher.Find(s.ledger, merchantID, amount)
	if err != nil {
		s.logger.DebugContext(ctx, "point query rejected", "error", err)
		return result, err
	}

	s.logger.InfoContext(ctx, "point query",
		"merchant_id", merchantID,
		"amount", amount,
		"status", result.Status.String(),
		"fraud", result.IsFraudulent(),
	)
	return result, nil
}

// RangeQuery builds the report for the inclusive ISO date range
// [startDate, endDate].
//
// Errors:
//   - *InvalidDateError when a date does not parse
//   - *rangefilter.InvalidRangeError when start is after end
//   - *rangefilter.EmptyRangeError when nothing falls in the range
func (s *QueryService) RangeQuery(ctx context.Context, startDate, endDate string) (report.Report, error) {
	start, err := ledger.ParseDate(startDate)
	if err != nil {
		return report.Report{}, &InvalidDateError{Field: "start_date", Value: startDate, Err: err}
	}
	end, err := ledger.ParseDate(endDate)
	if err != nil {
		return report.Report{}, &InvalidDateError{Field: "end_date", Value: endDate, Err: err}
	}

	key := cacheKey(start, end)
	if s.reports != nil {
		if cached, found := s.reports.Get(key); found {
			s.logger.DebugContext(ctx, "range report cache hit", "key", key)
			return cached.(report.Report).Clone(), nil
		}
	}

	filtered, err := rangefilter.Filter(s.ledger, start, end)
	if err != nil {
		return report.Report{}, err
	}
	if filtered.Empty() {
		emptyErr := filtered.EmptyError(s.ledger)
		s.logger.InfoContext(ctx, "range query matched nothing",
			"start", ledger.FormatDate(start),
			"end", ledger.FormatDate(end),
		)
		return report.Report{}, emptyErr
	}

	stats, err := aggregator.Aggregate(filtered.Transactions)
	if err != nil {
		return report.Report{}, fmt.Errorf("aggregate range: %w", err)
	}

	r, err := report.Assemble(ctx, filtered.Transactions, stats, s.renderer)
	if err != nil {
		return report.Report{}, err
	}

	s.logger.InfoContext(ctx, "range query",
		"start", ledger.FormatDate(start),
		"end", ledger.FormatDate(end),
		"total", stats.Total,
		"fraud", stats.FraudCount,
		"accuracy", stats.Accuracy.String(),
	)

	if s.reports != nil {
		s.reports.SetDefault(key, r.Clone())
	}
	return r, nil
}

func cacheKey(start, end time.Time) string {
	return "range:" + ledger.FormatDate(start) + ":" + ledger.FormatDate(end)
}
