// Package rangefilter selects ledger transactions inside an inclusive date
// interval.
package rangefilter

import (
	"fmt"
	"time"

	"github.com/eshaffer321/fraudlens/internal/domain/ledger"
)

// InvalidRangeError is returned when the start date is after the end date.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("start date %s is after end date %s",
		ledger.FormatDate(e.Start), ledger.FormatDate(e.End))
}

// EmptyRangeError describes a valid range that selected nothing. The ledger
// span is carried as diagnostic context; HasSpan is false for an empty ledger.
type EmptyRangeError struct {
	Start       time.Time
	End         time.Time
	LedgerStart time.Time
	LedgerEnd   time.Time
	HasSpan     bool
}

func (e *EmptyRangeError) Error() string {
	return fmt.Sprintf("no transactions found between %s and %s",
		ledger.FormatDate(e.Start), ledger.FormatDate(e.End))
}

// Result is the ordered subsequence of ledger transactions in range.
type Result struct {
	Start        time.Time
	End          time.Time
	Transactions []ledger.Transaction
}

// Empty reports whether nothing was selected.
func (r Result) Empty() bool {
	return len(r.Transactions) == 0
}

// EmptyError builds the diagnostic error for an empty result using the
// ledger's cached span.
func (r Result) EmptyError(l *ledger.Ledger) *EmptyRangeError {
	first, last, ok := l.Span()
	return &EmptyRangeError{
		Start:       r.Start,
		End:         r.End,
		LedgerStart: first,
		LedgerEnd:   last,
		HasSpan:     ok,
	}
}

// Filter returns every transaction with start <= date <= end, in ledger
// order. Bounds are normalized to calendar dates first.
func Filter(l *ledger.Ledger, start, end time.Time) (Result, error) {
	start = ledger.NormalizeDate(start)
	end = ledger.NormalizeDate(end)

	if start.After(end) {
		return Result{}, &InvalidRangeError{Start: start, End: end}
	}

	result := Result{Start: start, End: end}
	for _, tx := range l.All() {
		if tx.Date.Before(start) || tx.Date.After(end) {
			continue
		}
		result.Transactions = append(result.Transactions, tx)
	}
	return result, nil
}
