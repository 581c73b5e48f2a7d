package api_test

import (
	"context"
	"encoding/json"
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

	"github.com/eshaffer321/fraudlens/internal/api"
	"github.com/eshaffer321/fraudlens/internal/api/dto"
	"github.com/eshaffer321/fraudlens/internal/application/service"
	"github.com/eshaffer321/fraudlens/internal/domain/aggregator"
	"github.com/eshaffer321/fraudlens/internal/domain/ledger"
	"github.com/eshaffer321/fraudlens/internal/infrastructure/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubRenderer struct{}

func (stubRenderer) LineChart(context.Context, []aggregator.DailyCount) (string, error) {
	return "line", nil
}

func (stubRenderer) PieChart(context.Context, int, int) (string, error) {
	return "pie", nil
}

func newTestServer(t *testing.T, cfg api.Config) *api.Server {
	t.Helper()

	var txs []ledger.Transaction
	for d := 1; d <= 5; d++ {
		txs = append(txs, ledger.Transaction{
			MerchantID:   "M-" + string(rune('0'+d)),
			Amount:       decimal.NewFromInt(int64(d * 10)),
			Date:         time.Date(2023, time.January, d, 0, 0, 0, 0, time.UTC),
			FirstName:    "First",
			LastName:     "Last",
			IsFraudulent: d == 3 || d == 5,
		})
	}

	logger := logging.Discard()
	svc := service.NewQueryService(ledger.New(txs), stubRenderer{}, service.DefaultOptions(), logger)
	server, err := api.NewServer(cfg, svc, logger)
	require.NoError(t, err)
	return server
}

func serve(server *api.Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	return rec
}

func formRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestServer_HealthEndpoint(t *testing.T) {
	server := newTestServer(t, api.DefaultConfig())

	rec := serve(server, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var response dto.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "ok", response.Status)
	assert.Equal(t, 5, response.Transactions)
}

func TestServer_Pages(t *testing.T) {
	server := newTestServer(t, api.DefaultConfig())

	for _, path := range []string{"/", "/single_transaction", "/transaction_range"} {
		t.Run(path, func(t *testing.T) {
			rec := serve(server, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
			assert.Contains(t, rec.Body.String(), "FraudLens")
		})
	}
}

func TestServer_StaticAssets(t *testing.T) {
	server := newTestServer(t, api.DefaultConfig())

	rec := serve(server, httptest.NewRequest(http.MethodGet, "/static/script.js", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/predict_single")
}

func TestServer_PredictSingle(t *testing.T) {
	server := newTestServer(t, api.DefaultConfig())

	t.Run("fraud", func(t *testing.T) {
		rec := serve(server, formRequest("/predict_single", url.Values{"merchant_id": {"M-3"}, "amount": {"30"}}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"result":"Fraud Transaction"}`, rec.Body.String())
	})

	t.Run("safe after rounding", func(t *testing.T) {
		rec := serve(server, formRequest("/predict_single", url.Values{"merchant_id": {" M-2 "}, "amount": {"20.004"}}))

		assert.JSONEq(t, `{"result":"Safe Transaction"}`, rec.Body.String())
	})

	t.Run("no match", func(t *testing.T) {
		rec := serve(server, formRequest("/predict_single", url.Values{"merchant_id": {"M-9"}, "amount": {"30"}}))

		assert.JSONEq(t, `{"result":"No matching transaction found in dataset"}`, rec.Body.String())
	})

	t.Run("bad amount", func(t *testing.T) {
		rec := serve(server, formRequest("/predict_single", url.Values{"merchant_id": {"M-3"}, "amount": {"abc"}}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Error processing request: ")
	})
}

func TestServer_AnalyzeRange(t *testing.T) {
	server := newTestServer(t, api.DefaultConfig())

	t.Run("report", func(t *testing.T) {
		rec := serve(server, formRequest("/analyze_range", url.Values{
			"start_date": {"2023-01-02"},
			"end_date":   {"2023-01-04"},
		}))

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.RangeResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, 3, resp.TotalTransactions)
		assert.Equal(t, 1, resp.FraudTransactions)
		assert.Equal(t, 66.67, resp.Accuracy)
		require.Len(t, resp.FirstTwo, 2)
		assert.Equal(t, "M-2", resp.FirstTwo[0].MerchantID)
		require.Len(t, resp.LastTwo, 2)
		assert.Equal(t, "M-4", resp.LastTwo[1].MerchantID)
		assert.Equal(t, "Y", resp.FirstTwo[1].IsFraudulent)
		assert.Equal(t, "line", resp.LineChart)
		assert.Equal(t, "pie", resp.PieChart)
	})

	t.Run("empty range", func(t *testing.T) {
		rec := serve(server, formRequest("/analyze_range", url.Values{
			"start_date": {"2024-01-01"},
			"end_date":   {"2024-01-31"},
		}))

		assert.JSONEq(t, `{
			"error": "No transactions found between 2024-01-01 and 2024-01-31",
			"debug_info": "Dataset contains transactions from 2023-01-01 to 2023-01-05"
		}`, rec.Body.String())
	})

	t.Run("reversed range", func(t *testing.T) {
		rec := serve(server, formRequest("/analyze_range", url.Values{
			"start_date": {"2023-01-04"},
			"end_date":   {"2023-01-02"},
		}))

		assert.JSONEq(t, `{"error":"Start date must be before end date"}`, rec.Body.String())
	})
}

func TestServer_RateLimit(t *testing.T) {
	cfg := api.DefaultConfig()
	cfg.RateLimit = 0.001
	cfg.Burst = 1
	server := newTestServer(t, cfg)

	first := serve(server, httptest.NewRequest(http.MethodGet, "/health", nil))
	second := serve(server, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestServer_UnknownRoute(t *testing.T) {
	server := newTestServer(t, api.DefaultConfig())

	rec := serve(server, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"code":"not_found","message":"route not found"}`, rec.Body.String())
}

func TestServer_PredictSingle_ExtremeExponentIsRejected(t *testing.T) {
	server := newTestServer(t, api.DefaultConfig())

	start := time.Now()
	rec := serve(server, formRequest("/predict_single", url.Values{"merchant_id": {"M-1"}, "amount": {"1e-20000000"}}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error processing request: invalid amount")
	assert.Less(t, time.Since(start), time.Second)
}
