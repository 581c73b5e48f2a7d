package ledger

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// Source yields the raw rows of a tabular dataset.
// Next returns io.EOF once all rows have been read.
type Source interface {
	Header() ([]string, error)
	Next() ([]string, error)
}

// LoadError aborts a load. Row is the zero-based data row index, or -1 when
// the header itself is unusable.
type LoadError struct {
	Row    int
	Column string
	Reason string
}

func (e *LoadError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("ledger load failed: header: %s", e.Reason)
	}
	if e.Column != "" {
		return fmt.Sprintf("ledger load failed: row %d, column %q: %s", e.Row, e.Column, e.Reason)
	}
	return fmt.Sprintf("ledger load failed: row %d: %s", e.Row, e.Reason)
}

// Ledger is the read-only transaction table.
type Ledger struct {
	transactions []Transaction
	minDate      time.Time
	maxDate      time.Time
}

// New builds a ledger from already-normalized transactions. The slice is
// copied so later changes by the caller do not leak in.
func New(transactions []Transaction) *Ledger {
	l := &Ledger{transactions: make([]Transaction, len(transactions))}
	for i, tx := range transactions {
		tx.Date = NormalizeDate(tx.Date)
		l.transactions[i] = tx
		if i == 0 || tx.Date.Before(l.minDate) {
			l.minDate = tx.Date
		}
		if i == 0 || tx.Date.After(l.maxDate) {
			l.maxDate = tx.Date
		}
	}
	return l
}

// Load reads every row from src. Any bad row fails the whole load.
func Load(src Source) (*Ledger, error) {
	header, err := src.Header()
	if err != nil {
		return nil, &LoadError{Row: -1, Reason: err.Error()}
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var transactions []Transaction
	for row := 0; ; row++ {
		record, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &LoadError{Row: row, Reason: err.Error()}
		}

		tx, err := parseRow(row, record, index)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return New(transactions), nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		// Some exports prefix the first header cell with a UTF-8 BOM.
		name = strings.TrimPrefix(name, "\ufeff")
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &LoadError{
			Row:    -1,
			Reason: "missing required columns: " + strings.Join(missing, ", "),
		}
	}
	return index, nil
}

func parseRow(row int, record []string, index map[string]int) (Transaction, error) {
	field := func(col string) (string, error) {
		i := index[col]
		if i >= len(record) {
			return "", &LoadError{Row: row, Column: col, Reason: "missing value"}
		}
		return record[i], nil
	}

	var tx Transaction
	var raw string
	var err error

	if raw, err = field(ColumnMerchantID); err != nil {
		return tx, err
	}
	tx.MerchantID = raw

	if raw, err = field(ColumnAmount); err != nil {
		return tx, err
	}
	if tx.Amount, err = ParseAmount(raw); err != nil {
		return tx, &LoadError{Row: row, Column: ColumnAmount, Reason: err.Error()}
	}

	if raw, err = field(ColumnDate); err != nil {
		return tx, err
	}
	if tx.Date, err = ParseSourceDate(raw); err != nil {
		return tx, &LoadError{Row: row, Column: ColumnDate, Reason: err.Error()}
	}

	if raw, err = field(ColumnFirstName); err != nil {
		return tx, err
	}
	tx.FirstName = raw

	if raw, err = field(ColumnLastName); err != nil {
		return tx, err
	}
	tx.LastName = raw

	if raw, err = field(ColumnFraud); err != nil {
		return tx, err
	}
	if tx.IsFraudulent, err = ParseFraudFlag(raw); err != nil {
		return tx, &LoadError{Row: row, Column: ColumnFraud, Reason: err.Error()}
	}

	return tx, nil
}

// All returns the transactions in insertion order. The returned slice is
// shared with the ledger and must not be modified.
func (l *Ledger) All() []Transaction {
	return l.transactions
}

// Len returns the number of transactions.
func (l *Ledger) Len() int {
	return len(l.transactions)
}

// Span returns the earliest and latest transaction dates. ok is false for an
// empty ledger.
func (l *Ledger) Span() (first, last time.Time, ok bool) {
	if len(l.transactions) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return l.minDate, l.maxDate, true
}
