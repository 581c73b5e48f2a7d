package storage

import (
	"database/sql"
	"fmt"
	"io"
	"regexp"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/eshaffer321/fraudlens/internal/domain/ledger"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteSource reads ledger rows from a SQLite table in rowid order.
// The database is opened read-only.
type SQLiteSource struct {
	db    *sql.DB
	table string
	rows  *sql.Rows
}

// Compile-time check that SQLiteSource implements Source
var _ Source = (*SQLiteSource)(nil)

// OpenSQLite opens dbPath read-only and prepares to read table.
func OpenSQLite(dbPath, table string) (*SQLiteSource, error) {
	if table == "" {
		table = DefaultTable
	}
	if !identifierPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	db, err := sql.Open("sqlite3", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open ledger database: %w", err)
	}

	return &SQLiteSource{db: db, table: table}, nil
}

// Header runs the select and reports the required columns. A missing column
// surfaces here as a query error.
func (s *SQLiteSource) Header() ([]string, error) {
	quoted := make([]string, len(ledger.RequiredColumns))
	for i, col := range ledger.RequiredColumns {
		quoted[i] = `"` + col + `"`
	}

	query := fmt.Sprintf(`SELECT %s FROM "%s" ORDER BY rowid`, strings.Join(quoted, ", "), s.table)
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query ledger table %s: %w", s.table, err)
	}
	s.rows = rows

	header := make([]string, len(ledger.RequiredColumns))
	copy(header, ledger.RequiredColumns)
	return header, nil
}

// Next scans the next row. NULL values become empty strings.
func (s *SQLiteSource) Next() ([]string, error) {
	if s.rows == nil {
		return nil, fmt.Errorf("header not read")
	}
	if !s.rows.Next() {
		if err := s.rows.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}

	values := make([]sql.NullString, len(ledger.RequiredColumns))
	dest := make([]any, len(values))
	for i := range values {
		dest[i] = &values[i]
	}
	if err := s.rows.Scan(dest...); err != nil {
		return nil, fmt.Errorf("scan ledger row: %w", err)
	}

	record := make([]string, len(values))
	for i, v := range values {
		record[i] = v.String
	}
	return record, nil
}

// Close closes the result set and the database connection
func (s *SQLiteSource) Close() error {
	if s.rows != nil {
		_ = s.rows.Close()
	}
	return s.db.Close()
}
