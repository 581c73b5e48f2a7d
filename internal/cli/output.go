package cli

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/eshaffer321/fraudlens/internal/api/dto"
	"github.com/eshaffer321/fraudlens/internal/domain/ledger"
	"github.com/eshaffer321/fraudlens/internal/domain/matcher"
	"github.com/eshaffer321/fraudlens/internal/domain/report"
)

// Chart file names written by WriteCharts
const (
	LineChartFile = "daily_transactions.png"
	PieChartFile  = "safety_distribution.png"
)

// PrintHeader prints the application header
func PrintHeader(w io.Writer, l *ledger.Ledger) {
	fmt.Fprintf(w, "fraudlens: %d transactions", l.Len())
	if first, last, ok := l.Span(); ok {
		fmt.Fprintf(w, " (%s to %s)", ledger.FormatDate(first), ledger.FormatDate(last))
	}
	fmt.Fprintln(w)
}

// PrintPointResult prints the outcome of a point query
func PrintPointResult(w io.Writer, result matcher.MatchResult) {
	switch {
	case result.Status == matcher.NoMatch:
		fmt.Fprintln(w, dto.ResultNoMatch)
		return
	case result.IsFraudulent():
		fmt.Fprintln(w, dto.ResultFraud)
	default:
		fmt.Fprintln(w, dto.ResultSafe)
	}

	tx := result.Transaction
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Merchant", "First", "Last", "Amount", "Date", "Fraud"})
	table.Append([]string{
		tx.MerchantID,
		tx.FirstName,
		tx.LastName,
		tx.Amount.StringFixed(2),
		ledger.FormatDate(tx.Date),
		tx.FraudCode(),
	})
	table.Render()
}

// PrintRangeReport prints the statistics and samples of a range report
func PrintRangeReport(w io.Writer, r report.Report) {
	stats := tablewriter.NewWriter(w)
	stats.SetHeader([]string{"Total", "Fraud", "Safe", "Accuracy %"})
	stats.Append([]string{
		strconv.Itoa(r.Stats.Total),
		strconv.Itoa(r.Stats.FraudCount),
		strconv.Itoa(r.Stats.SafeCount),
		r.Stats.Accuracy.StringFixed(2),
	})
	stats.Render()

	daily := tablewriter.NewWriter(w)
	daily.SetHeader([]string{"Date", "Transactions"})
	for _, dc := range r.Stats.DailyCounts {
		daily.Append([]string{ledger.FormatDate(dc.Date), strconv.Itoa(dc.Count)})
	}
	daily.Render()

	fmt.Fprintln(w, "\nFirst two:")
	printSamples(w, r.FirstTwo)
	fmt.Fprintln(w, "\nLast two:")
	printSamples(w, r.LastTwo)
}

func printSamples(w io.Writer, samples []report.Sample) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Merchant", "First", "Last", "Amount", "Status"})
	for _, s := range samples {
		status := "Safe"
		if s.IsFraudulent {
			status = "Fraud"
		}
		table.Append([]string{s.MerchantID, s.FirstName, s.LastName, s.Amount.StringFixed(2), status})
	}
	table.Render()
}

// WriteCharts decodes the report charts into PNG files under dir
func WriteCharts(dir string, r report.Report) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create charts dir: %w", err)
	}

	charts := []struct {
		name string
		data string
	}{
		{LineChartFile, r.LineChart},
		{PieChartFile, r.PieChart},
	}

	var written []string
	for _, c := range charts {
		png, err := base64.StdEncoding.DecodeString(c.data)
		if err != nil {
			return written, fmt.Errorf("decode %s: %w", c.name, err)
		}
		path := filepath.Join(dir, c.name)
		if err := os.WriteFile(path, png, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", c.name, err)
		}
		written = append(written, path)
	}
	return written, nil
}
