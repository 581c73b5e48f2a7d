package dto

import (
	"time"

	"github.com/eshaffer321/fraudlens/internal/domain/ledger"
	"github.com/eshaffer321/fraudlens/internal/domain/report"
)

// Point query result texts.
const (
	ResultFraud   = "Fraud Transaction"
	ResultSafe    = "Safe Transaction"
	ResultNoMatch = "No matching transaction found in dataset"
)

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status       string `json:"status"`
	Timestamp    string `json:"timestamp"`
	Transactions int    `json:"transactions"`
}

// NewHealthResponse creates a health response with current timestamp.
func NewHealthResponse(transactions int) HealthResponse {
	return HealthResponse{
		Status:       "ok",
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Transactions: transactions,
	}
}

// PredictResponse is the answer to a point query.
type PredictResponse struct {
	Result string `json:"result"`
}

// ErrorResponse is returned by /analyze_range when no report can be built.
type ErrorResponse struct {
	Error     string `json:"error"`
	DebugInfo string `json:"debug_info,omitempty"`
}

// SampleRecord mirrors the dataset columns the page script reads.
type SampleRecord struct {
	MerchantID   string  `json:"Merchant_id"`
	FirstName    string  `json:"first"`
	LastName     string  `json:"last"`
	Amount       float64 `json:"Transaction_amount"`
	IsFraudulent string  `json:"isFradulent"`
}

// RangeResponse is the answer to a range query.
type RangeResponse struct {
	TotalTransactions int            `json:"total_transactions"`
	FraudTransactions int            `json:"fraud_transactions"`
	Accuracy          float64        `json:"accuracy"`
	FirstTwo          []SampleRecord `json:"first_two"`
	LastTwo           []SampleRecord `json:"last_two"`
	LineChart         string         `json:"line_chart"`
	PieChart          string         `json:"pie_chart"`
}

// NewRangeResponse converts a report into its wire form.
func NewRangeResponse(r report.Report) RangeResponse {
	return RangeResponse{
		TotalTransactions: r.Stats.Total,
		FraudTransactions: r.Stats.FraudCount,
		Accuracy:          r.Stats.AccuracyFloat(),
		FirstTwo:          toSampleRecords(r.FirstTwo),
		LastTwo:           toSampleRecords(r.LastTwo),
		LineChart:         r.LineChart,
		PieChart:          r.PieChart,
	}
}

func toSampleRecords(samples []report.Sample) []SampleRecord {
	records := make([]SampleRecord, len(samples))
	for i, s := range samples {
		code := "N"
		if s.IsFraudulent {
			code = "Y"
		}
		records[i] = SampleRecord{
			MerchantID:   s.MerchantID,
			FirstName:    s.FirstName,
			LastName:     s.LastName,
			Amount:       s.Amount.InexactFloat64(),
			IsFraudulent: code,
		}
	}
	return records
}

// DatasetSpanInfo renders the debug hint attached to an empty range.
func DatasetSpanInfo(first, last time.Time) string {
	return "Dataset contains transactions from " + ledger.FormatDate(first) + " to " + ledger.FormatDate(last)
}
