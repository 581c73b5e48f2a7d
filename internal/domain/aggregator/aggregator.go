// Package aggregator computes fraud statistics over a filtered set of
// transactions.
//
// Accuracy is the share of non-fraudulent transactions as a percentage,
// computed in decimal arithmetic and rounded half away from zero to two
// places:
//
//	total=10, fraud=3  ->  70
//	total=3,  fraud=1  ->  66.67
package aggregator

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/eshaffer321/fraudlens/internal/domain/ledger"
)

// ErrEmptySubset is returned when Aggregate is called without transactions.
// Callers are expected to handle the empty range before aggregating.
var ErrEmptySubset = errors.New("aggregate called with an empty subset")

// DailyCount is the number of transactions on one calendar date.
type DailyCount struct {
	Date  time.Time
	Count int
}

// Stats summarizes a subset of the ledger.
type Stats struct {
	Total       int
	FraudCount  int
	SafeCount   int
	Accuracy    decimal.Decimal // percentage of safe transactions, 2 places
	DailyCounts []DailyCount    // ascending by date
}

// AccuracyFloat returns Accuracy as a float64 for presentation.
func (s Stats) AccuracyFloat() float64 {
	return s.Accuracy.InexactFloat64()
}

// Aggregate computes totals, accuracy and daily counts for subset.
func Aggregate(subset []ledger.Transaction) (Stats, error) {
	if len(subset) == 0 {
		return Stats{}, ErrEmptySubset
	}

	stats := Stats{Total: len(subset)}
	perDay := make(map[time.Time]int)
	for _, tx := range subset {
		if tx.IsFraudulent {
			stats.FraudCount++
		}
		perDay[ledger.NormalizeDate(tx.Date)]++
	}
	stats.SafeCount = stats.Total - stats.FraudCount
	stats.Accuracy = Accuracy(stats.Total, stats.FraudCount)

	stats.DailyCounts = make([]DailyCount, 0, len(perDay))
	for date, count := range perDay {
		stats.DailyCounts = append(stats.DailyCounts, DailyCount{Date: date, Count: count})
	}
	sort.Slice(stats.DailyCounts, func(i, j int) bool {
		return stats.DailyCounts[i].Date.Before(stats.DailyCounts[j].Date)
	})

	return stats, nil
}

// Accuracy returns (total-fraud)/total*100 rounded to two places. total
// must be positive.
func Accuracy(total, fraud int) decimal.Decimal {
	safe := decimal.NewFromInt(int64(total - fraud))
	return safe.Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(2)
}
