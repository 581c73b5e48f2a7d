package dto

// PredictRequest is the form posted to /predict_single.
type PredictRequest struct {
	MerchantID string `form:"merchant_id"`
	Amount     string `form:"amount"`
}

// AnalyzeRequest is the form posted to /analyze_range.
type AnalyzeRequest struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}
