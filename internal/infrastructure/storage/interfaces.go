// Package storage provides the tabular sources a ledger is loaded from.
//
// Two formats are supported:
//  1. CSV file with a header row (default)
//  2. SQLite database table with the same column names, opened read-only
//
// Example usage:
//
//	l, err := storage.LoadLedger(storage.Options{Path: "transactions.csv"})
package storage

import (
	"io"

	"github.com/eshaffer321/fraudlens/internal/domain/ledger"
)

// Supported source formats
const (
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

// DefaultTable is the SQLite table read when none is configured.
const DefaultTable = "transactions"

// Source is a ledger source that holds an open file or connection.
type Source interface {
	ledger.Source
	io.Closer
}

// Options selects and configures a source.
type Options struct {
	Path   string
	Format string // "csv" or "sqlite"; empty means infer from the extension
	Table  string // SQLite only
}
