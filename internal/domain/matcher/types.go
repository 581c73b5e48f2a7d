package matcher

import (
	"fmt"

	"github.com/eshaffer321/fraudlens/internal/domain/ledger"
)

// Config holds matcher configuration
type Config struct {
	AmountPlaces int32 // Decimal places amounts are rounded to before comparing (default: 2)
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		AmountPlaces: 2,
	}
}

// Status is the outcome of a point lookup
type Status int

const (
	// NoMatch means no ledger record has the merchant id and amount
	NoMatch Status = iota
	// Found means at least one record matched; the first one is reported
	Found
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	default:
		return "no_match"
	}
}

// MatchResult contains match information
type MatchResult struct {
	Status      Status
	Transaction *ledger.Transaction // nil unless Status is Found
	Index       int                 // ledger position of the match, -1 when not found
}

// IsFraudulent reports the stored fraud flag of the matched record.
// It is false when nothing matched.
func (r MatchResult) IsFraudulent() bool {
	return r.Status == Found && r.Transaction.IsFraudulent
}

// InvalidInputError reports a malformed point query
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
