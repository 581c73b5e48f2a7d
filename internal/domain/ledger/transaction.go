// Package ledger holds the immutable transaction table that every query
// reads from.
//
// A ledger is built exactly once from a Source. Loading owns all type
// coercion: amounts become decimals, fraud codes become booleans and dates
// are normalized to UTC midnight. After Load returns, nothing in the ledger
// changes, so a *Ledger can be shared by any number of goroutines.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Column names required in the source header.
const (
	ColumnMerchantID = "Merchant_id"
	ColumnAmount     = "Transaction_amount"
	ColumnDate       = "Transaction date"
	ColumnFirstName  = "first"
	ColumnLastName   = "last"
	ColumnFraud      = "isFradulent"
)

// RequiredColumns lists the header columns Load insists on, in dataset order.
var RequiredColumns = []string{
	ColumnMerchantID,
	ColumnAmount,
	ColumnDate,
	ColumnFirstName,
	ColumnLastName,
	ColumnFraud,
}

// Transaction is one row of the ledger.
type Transaction struct {
	MerchantID   string
	Amount       decimal.Decimal
	Date         time.Time // always UTC midnight
	FirstName    string
	LastName     string
	IsFraudulent bool
}

// MerchantKey is the merchant id as used for matching.
func (t Transaction) MerchantKey() string {
	return strings.TrimSpace(t.MerchantID)
}

// FraudCode renders the fraud flag back into its dataset code.
func (t Transaction) FraudCode() string {
	if t.IsFraudulent {
		return "Y"
	}
	return "N"
}

// ParseFraudFlag converts a dataset fraud code into a boolean.
func ParseFraudFlag(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "1", "true":
		return true, nil
	case "n", "0", "false":
		return false, nil
	}
	return false, fmt.Errorf("unrecognized fraud flag %q", s)
}

// ParseAmount converts a textual amount into a decimal.
func ParseAmount(s string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return decimal.Decimal{}, fmt.Errorf("amount is empty")
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q", s)
	}
	if err := CheckAmount(d); err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// Bounds on amount representation. Rounding rescales the coefficient by
// 10^|exponent|, so the exponent must stay small.
const (
	MinAmountExponent = -18
	MaxAmountExponent = 18
	MaxAmountDigits   = 38
)

// CheckAmount rejects amounts whose exponent or digit count is out of range.
func CheckAmount(d decimal.Decimal) error {
	if exp := d.Exponent(); exp < MinAmountExponent || exp > MaxAmountExponent {
		return fmt.Errorf("exponent %d out of range [%d, %d]", exp, MinAmountExponent, MaxAmountExponent)
	}
	if n := d.NumDigits(); n > MaxAmountDigits {
		return fmt.Errorf("%d digits exceeds %d", n, MaxAmountDigits)
	}
	return nil
}

// Layouts accepted for the dataset date column.
var sourceDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
}

// Layouts accepted for query dates.
var queryDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

// NormalizeDate drops the time of day and zone, keeping the calendar day as
// it was written.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseSourceDate parses a dataset date into its normalized form.
func ParseSourceDate(s string) (time.Time, error) {
	return parseWithLayouts(s, sourceDateLayouts)
}

// ParseDate parses an ISO query date (YYYY-MM-DD) into its normalized form.
func ParseDate(s string) (time.Time, error) {
	return parseWithLayouts(s, queryDateLayouts)
}

func parseWithLayouts(s string, layouts []string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return NormalizeDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// FormatDate renders a normalized date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
