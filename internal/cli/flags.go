package cli

import (
	"errors"
	"flag"
	"io"
)

// Query modes
const (
	ModePoint = "point"
	ModeRange = "range"
)

// QueryFlags are the flags of the query command
type QueryFlags struct {
	MerchantID string
	Amount     string
	StartDate  string
	EndDate    string
	ChartsDir  string
	LedgerPath string
	ConfigPath string
	Verbose    bool
}

// ParseQueryFlags parses query flags from args (without the program name)
func ParseQueryFlags(args []string, output io.Writer) (QueryFlags, error) {
	var flags QueryFlags
	fs := flag.NewFlagSet("fraudlens", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&flags.MerchantID, "merchant", "", "Merchant id for a point query")
	fs.StringVar(&flags.Amount, "amount", "", "Transaction amount for a point query")
	fs.StringVar(&flags.StartDate, "start", "", "Range start date (YYYY-MM-DD)")
	fs.StringVar(&flags.EndDate, "end", "", "Range end date (YYYY-MM-DD)")
	fs.StringVar(&flags.ChartsDir, "charts", "", "Directory to write range charts as PNG files")
	fs.StringVar(&flags.LedgerPath, "ledger", "", "Ledger file, overrides config")
	fs.StringVar(&flags.ConfigPath, "config", "config.yaml", "Config file")
	fs.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return flags, err
	}
	return flags, nil
}

// Mode reports which query the flags ask for
func (f QueryFlags) Mode() (string, error) {
	point := f.MerchantID != "" || f.Amount != ""
	dateRange := f.StartDate != "" || f.EndDate != ""

	switch {
	case point && dateRange:
		return "", errors.New("use either -merchant/-amount or -start/-end, not both")
	case point:
		if f.MerchantID == "" || f.Amount == "" {
			return "", errors.New("a point query needs both -merchant and -amount")
		}
		return ModePoint, nil
	case dateRange:
		if f.StartDate == "" || f.EndDate == "" {
			return "", errors.New("a range query needs both -start and -end")
		}
		return ModeRange, nil
	default:
		return "", errors.New("nothing to do: pass -merchant and -amount, or -start and -end")
	}
}
