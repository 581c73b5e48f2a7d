package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/fraudlens/internal/api/dto"
	"github.com/eshaffer321/fraudlens/internal/api/handlers"
	"github.com/eshaffer321/fraudlens/internal/domain/aggregator"
	"github.com/eshaffer321/fraudlens/internal/domain/ledger"
	"github.com/eshaffer321/fraudlens/internal/domain/matcher"
	"github.com/eshaffer321/fraudlens/internal/domain/rangefilter"
	"github.com/eshaffer321/fraudlens/internal/domain/report"
	"github.com/eshaffer321/fraudlens/internal/infrastructure/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeQuerier struct {
	point    matcher.MatchResult
	pointErr error
	report   report.Report
	rangeErr error
	ledger   *ledger.Ledger

	gotMerchant, gotAmount string
	gotStart, gotEnd       string
}

func (f *fakeQuerier) PointQuery(_ context.Context, merchantID, amount string) (matcher.MatchResult, error) {
	f.gotMerchant, f.gotAmount = merchantID, amount
	return f.point, f.pointErr
}

func (f *fakeQuerier) RangeQuery(_ context.Context, startDate, endDate string) (report.Report, error) {
	f.gotStart, f.gotEnd = startDate, endDate
	return f.report, f.rangeErr
}

func (f *fakeQuerier) Ledger() *ledger.Ledger {
	if f.ledger == nil {
		return ledger.New(nil)
	}
	return f.ledger
}

func newRouter(q *fakeQuerier) *gin.Engine {
	base := handlers.NewBase(q, logging.Discard())
	r := gin.New()
	r.GET("/health", handlers.NewHealthHandler(base).Get)
	r.POST("/predict_single", handlers.NewPredictHandler(base).Predict)
	r.POST("/analyze_range", handlers.NewAnalyzeHandler(base).Analyze)
	return r
}

func postForm(t *testing.T, r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHealthHandler(t *testing.T) {
	q := &fakeQuerier{ledger: ledger.New([]ledger.Transaction{{MerchantID: "M-1"}})}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	newRouter(q).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp dto.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.Transactions)
	assert.NotEmpty(t, resp.Timestamp)
}

func TestPredictHandler(t *testing.T) {
	fraudTx := &ledger.Transaction{MerchantID: "M-1", IsFraudulent: true}
	safeTx := &ledger.Transaction{MerchantID: "M-1"}

	tests := []struct {
		name     string
		querier  *fakeQuerier
		expected string
	}{
		{
			name:     "fraud",
			querier:  &fakeQuerier{point: matcher.MatchResult{Status: matcher.Found, Transaction: fraudTx}},
			expected: "Fraud Transaction",
		},
		{
			name:     "safe",
			querier:  &fakeQuerier{point: matcher.MatchResult{Status: matcher.Found, Transaction: safeTx}},
			expected: "Safe Transaction",
		},
		{
			name:     "no match",
			querier:  &fakeQuerier{point: matcher.MatchResult{Status: matcher.NoMatch, Index: -1}},
			expected: "No matching transaction found in dataset",
		},
		{
			name:     "invalid input",
			querier:  &fakeQuerier{pointErr: &matcher.InvalidInputError{Field: "amount", Reason: "not a number"}},
			expected: "Error processing request: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postForm(t, newRouter(tt.querier), "/predict_single", url.Values{
				"merchant_id": {"M-1"},
				"amount":      {"12.50"},
			})

			assert.Equal(t, http.StatusOK, rec.Code)
			var resp dto.PredictResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.True(t, strings.HasPrefix(resp.Result, tt.expected), resp.Result)
			assert.Equal(t, "M-1", tt.querier.gotMerchant)
			assert.Equal(t, "12.50", tt.querier.gotAmount)
		})
	}
}

func TestAnalyzeHandler_Success(t *testing.T) {
	q := &fakeQuerier{report: report.Report{
		Stats: aggregator.Stats{
			Total:      3,
			FraudCount: 1,
			SafeCount:  2,
			Accuracy:   decimal.RequireFromString("66.67"),
		},
		FirstTwo: []report.Sample{
			{MerchantID: "M-2", FirstName: "Ada", LastName: "L", Amount: decimal.RequireFromString("20.5"), IsFraudulent: false},
		},
		LastTwo: []report.Sample{
			{MerchantID: "M-3", FirstName: "Bob", LastName: "K", Amount: decimal.NewFromInt(30), IsFraudulent: true},
		},
		LineChart: "bGluZQ==",
		PieChart:  "cGll",
	}}

	rec := postForm(t, newRouter(q), "/analyze_range", url.Values{
		"start_date": {"2023-01-02"},
		"end_date":   {"2023-01-04"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2023-01-02", q.gotStart)
	assert.Equal(t, "2023-01-04", q.gotEnd)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3.0, body["total_transactions"])
	assert.Equal(t, 1.0, body["fraud_transactions"])
	assert.Equal(t, 66.67, body["accuracy"])
	assert.Equal(t, "bGluZQ==", body["line_chart"])
	assert.Equal(t, "cGll", body["pie_chart"])

	first := body["first_two"].([]any)[0].(map[string]any)
	assert.Equal(t, "M-2", first["Merchant_id"])
	assert.Equal(t, "Ada", first["first"])
	assert.Equal(t, 20.5, first["Transaction_amount"])
	assert.Equal(t, "N", first["isFradulent"])
	last := body["last_two"].([]any)[0].(map[string]any)
	assert.Equal(t, "Y", last["isFradulent"])
}

func TestAnalyzeHandler_Errors(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2023, time.January, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name      string
		err       error
		wantError string
		wantDebug string
	}{
		{
			name:      "start after end",
			err:       &rangefilter.InvalidRangeError{Start: day(4), End: day(2)},
			wantError: "Start date must be before end date",
		},
		{
			name: "empty range",
			err: &rangefilter.EmptyRangeError{
				Start: day(10), End: day(11),
				LedgerStart: day(1), LedgerEnd: day(5), HasSpan: true,
			},
			wantError: "No transactions found between 2023-01-10 and 2023-01-11",
			wantDebug: "Dataset contains transactions from 2023-01-01 to 2023-01-05",
		},
		{
			name:      "empty range over an empty ledger",
			err:       &rangefilter.EmptyRangeError{Start: day(10), End: day(11)},
			wantError: "No transactions found between 2023-01-10 and 2023-01-11",
		},
		{
			name:      "anything else",
			err:       errors.New("render failed"),
			wantError: "Error processing request: render failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postForm(t, newRouter(&fakeQuerier{rangeErr: tt.err}), "/analyze_range", url.Values{
				"start_date": {"2023-01-10"},
				"end_date":   {"2023-01-11"},
			})

			assert.Equal(t, http.StatusOK, rec.Code)
			var resp dto.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.wantError, resp.Error)
			assert.Equal(t, tt.wantDebug, resp.DebugInfo)
		})
	}
}

func TestBase_NotFoundAndRecover(t *testing.T) {
	base := handlers.NewBase(&fakeQuerier{}, logging.Discard())
	r := gin.New()
	r.Use(gin.CustomRecovery(base.Recover))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })
	r.NoRoute(base.NotFound)

	t.Run("unknown route", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		var apiErr dto.APIError
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
		assert.Equal(t, dto.ErrCodeNotFound, apiErr.Code)
	})

	t.Run("panic", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		var apiErr dto.APIError
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
		assert.Equal(t, dto.ErrCodeInternalError, apiErr.Code)
	})
}
