package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/eshaffer321/fraudlens/internal/application/service"
)

// RunQuery answers the query described by flags and prints it to w
func RunQuery(ctx context.Context, svc *service.QueryService, flags QueryFlags, w io.Writer) error {
	mode, err := flags.Mode()
	if err != nil {
		return err
	}

	PrintHeader(w, svc.Ledger())

	switch mode {
	case ModePoint:
		result, err := svc.PointQuery(ctx, flags.MerchantID, flags.Amount)
		if err != nil {
			return err
		}
		PrintPointResult(w, result)
		return nil

	default:
		r, err := svc.RangeQuery(ctx, flags.StartDate, flags.EndDate)
		if err != nil {
			return err
		}
		PrintRangeReport(w, r)

		if flags.ChartsDir == "" {
			return nil
		}
		paths, err := WriteCharts(flags.ChartsDir, r)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintf(w, "chart written: %s\n", p)
		}
		return nil
	}
}
