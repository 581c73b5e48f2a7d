// Package matcher provides point lookups of ledger transactions by
// merchant id and amount.
//
// The matcher uses strict matching criteria:
//   - Merchant id must be equal after trimming surrounding whitespace (case-sensitive)
//   - Amount must be equal after rounding both sides to cents (configurable)
//   - The first matching record in ledger order wins
//
// Example usage:
//
//	m := matcher.NewMatcher(matcher.DefaultConfig())
//	result, err := m.Find(l, "M-100", "10.004")
//	if result.Status == matcher.Found {
//		fraud := result.IsFraudulent()
//	}
package matcher

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/eshaffer321/fraudlens/internal/domain/ledger"
)

// Matcher matches point queries against a ledger
type Matcher struct {
	config Config
}

// NewMatcher creates a new matcher with the given config
func NewMatcher(config Config) *Matcher {
	return &Matcher{
		config: config,
	}
}

// Find looks up a transaction by merchant id and a textual amount.
// Malformed input returns an *InvalidInputError, never a partial match.
func (m *Matcher) Find(l *ledger.Ledger, merchantID, amount string) (MatchResult, error) {
	if strings.TrimSpace(amount) == "" {
		return noMatch(), &InvalidInputError{Field: "amount", Reason: "amount is required"}
	}
	parsed, err := ledger.ParseAmount(amount)
	if err != nil {
		return noMatch(), &InvalidInputError{Field: "amount", Reason: err.Error()}
	}
	return m.FindAmount(l, merchantID, parsed)
}

// FindAmount looks up a transaction by merchant id and a decimal amount.
func (m *Matcher) FindAmount(l *ledger.Ledger, merchantID string, amount decimal.Decimal) (MatchResult, error) {
	key := strings.TrimSpace(merchantID)
	if key == "" {
		return noMatch(), &InvalidInputError{Field: "merchant_id", Reason: "merchant id is required"}
	}

	if err := ledger.CheckAmount(amount); err != nil {
		return noMatch(), &InvalidInputError{Field: "amount", Reason: err.Error()}
	}

	want := m.round(amount)

	txs := l.All()
	for i := range txs {
		tx := &txs[i]
		if tx.MerchantKey() != key {
			continue
		}
		if !m.round(tx.Amount).Equal(want) {
			continue
		}
		return MatchResult{Status: Found, Transaction: tx, Index: i}, nil
	}

	return noMatch(), nil
}

// round rounds half away from zero, so 10.005 becomes 10.01 on both sides
// of the comparison.
func (m *Matcher) round(d decimal.Decimal) decimal.Decimal {
	return d.Round(m.config.AmountPlaces)
}

func noMatch() MatchResult {
	return MatchResult{Status: NoMatch, Index: -1}
}
