package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/eshaffer321/fraudlens/internal/domain/ledger"
)

// Open opens the source described by opts.
func Open(opts Options) (Source, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("ledger path is required")
	}

	switch format := resolveFormat(opts); format {
	case FormatCSV:
		return OpenCSV(opts.Path)
	case FormatSQLite:
		return OpenSQLite(opts.Path, opts.Table)
	default:
		return nil, fmt.Errorf("unsupported ledger format %q", format)
	}
}

// LoadLedger opens the source, loads the whole ledger and closes the source.
func LoadLedger(opts Options) (*ledger.Ledger, error) {
	src, err := Open(opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	return ledger.Load(src)
}

func resolveFormat(opts Options) string {
	if opts.Format != "" {
		return strings.ToLower(opts.Format)
	}
	switch strings.ToLower(filepath.Ext(opts.Path)) {
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatCSV
	}
}
