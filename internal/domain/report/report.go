// Package report assembles the response for a range query: statistics,
// boundary samples and the chart artifacts produced by a ChartRenderer.
package report

import (
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/eshaffer321/fraudlens/internal/domain/aggregator"
	"github.com/eshaffer321/fraudlens/internal/domain/ledger"
)

// SampleSize is the number of records taken from each end of the subset.
const SampleSize = 2

// ChartRenderer turns aggregates into encoded images. The returned strings
// are opaque to this package.
type ChartRenderer interface {
	LineChart(ctx context.Context, daily []aggregator.DailyCount) (string, error)
	PieChart(ctx context.Context, safe, fraud int) (string, error)
}

// Sample is the display projection of a transaction.
type Sample struct {
	MerchantID   string
	FirstName    string
	LastName     string
	Amount       decimal.Decimal
	IsFraudulent bool
}

// Report is the full answer to a range query.
type Report struct {
	Stats     aggregator.Stats
	FirstTwo  []Sample
	LastTwo   []Sample
	LineChart string
	PieChart  string
}

// Clone returns a copy that shares no slices with r.
func (r Report) Clone() Report {
	out := r
	out.Stats.DailyCounts = slices.Clone(r.Stats.DailyCounts)
	out.FirstTwo = slices.Clone(r.FirstTwo)
	out.LastTwo = slices.Clone(r.LastTwo)
	return out
}

// Assemble bundles stats, the first and last samples of subset, and the
// rendered charts. The samples may overlap when subset is short.
func Assemble(ctx context.Context, subset []ledger.Transaction, stats aggregator.Stats, renderer ChartRenderer) (Report, error) {
	r := Report{
		Stats:    stats,
		FirstTwo: project(Head(subset, SampleSize)),
		LastTwo:  project(Tail(subset, SampleSize)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		chart, err := renderer.LineChart(gctx, stats.DailyCounts)
		if err != nil {
			return fmt.Errorf("render line chart: %w", err)
		}
		r.LineChart = chart
		return nil
	})
	g.Go(func() error {
		chart, err := renderer.PieChart(gctx, stats.SafeCount, stats.FraudCount)
		if err != nil {
			return fmt.Errorf("render pie chart: %w", err)
		}
		r.PieChart = chart
		return nil
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	return r, nil
}

// Head returns up to n records from the start of txs.
func Head(txs []ledger.Transaction, n int) []ledger.Transaction {
	if len(txs) < n {
		n = len(txs)
	}
	return txs[:n]
}

// Tail returns up to n records from the end of txs.
func Tail(txs []ledger.Transaction, n int) []ledger.Transaction {
	if len(txs) < n {
		n = len(txs)
	}
	return txs[len(txs)-n:]
}

func project(txs []ledger.Transaction) []Sample {
	samples := make([]Sample, len(txs))
	for i, tx := range txs {
		samples[i] = Sample{
			MerchantID:   tx.MerchantID,
			FirstName:    tx.FirstName,
			LastName:     tx.LastName,
			Amount:       tx.Amount,
			IsFraudulent: tx.IsFraudulent,
		}
	}
	return samples
}
