package report

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/fraudlens/internal/domain/aggregator"
	"github.com/eshaffer321/fraudlens/internal/domain/ledger"
)

// fakeRenderer records what it was asked to draw
type fakeRenderer struct {
	daily       []aggregator.DailyCount
	safe, fraud int
	lineErr     error
}

func (f *fakeRenderer) LineChart(_ context.Context, daily []aggregator.DailyCount) (string, error) {
	f.daily = daily
	if f.lineErr != nil {
		return "", f.lineErr
	}
	return fmt.Sprintf("line:%d", len(daily)), nil
}

func (f *fakeRenderer) PieChart(_ context.Context, safe, fraud int) (string, error) {
	f.safe, f.fraud = safe, fraud
	return fmt.Sprintf("pie:%d/%d", safe, fraud), nil
}

func subset(n int) []ledger.Transaction {
	txs := make([]ledger.Transaction, n)
	for i := range txs {
		txs[i] = ledger.Transaction{
			MerchantID:   fmt.Sprintf("M-%d", i),
			FirstName:    "First",
			LastName:     "Last",
			Amount:       decimal.NewFromFloat(1.5).Add(decimal.NewFromInt(int64(i))),
			Date:         time.Date(2023, 1, i+1, 0, 0, 0, 0, time.UTC),
			IsFraudulent: i%2 == 1,
		}
	}
	return txs
}

func ids(samples []Sample) []string {
	out := make([]string, len(samples))
	for i, s := range samples {
		out[i] = s.MerchantID
	}
	return out
}

func TestAssemble_Samples(t *testing.T) {
	tests := []struct {
		n        int
		wantHead []string
		wantTail []string
	}{
		{1, []string{"M-0"}, []string{"M-0"}},
		{2, []string{"M-0", "M-1"}, []string{"M-0", "M-1"}},
		{3, []string{"M-0", "M-1"}, []string{"M-1", "M-2"}},
		{4, []string{"M-0", "M-1"}, []string{"M-2", "M-3"}},
		{7, []string{"M-0", "M-1"}, []string{"M-5", "M-6"}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d", tt.n), func(t *testing.T) {
			txs := subset(tt.n)
			stats, err := aggregator.Aggregate(txs)
			require.NoError(t, err)

			r, err := Assemble(context.Background(), txs, stats, &fakeRenderer{})

			require.NoError(t, err)
			assert.Equal(t, tt.wantHead, ids(r.FirstTwo))
			assert.Equal(t, tt.wantTail, ids(r.LastTwo))
		})
	}
}

func TestAssemble_ProjectsDisplayFields(t *testing.T) {
	txs := subset(2)
	stats, err := aggregator.Aggregate(txs)
	require.NoError(t, err)

	r, err := Assemble(context.Background(), txs, stats, &fakeRenderer{})

	require.NoError(t, err)
	second := r.FirstTwo[1]
	assert.Equal(t, "First", second.FirstName)
	assert.Equal(t, "Last", second.LastName)
	assert.Equal(t, "2.5", second.Amount.String())
	assert.True(t, second.IsFraudulent)
}

func TestAssemble_EmbedsChartsUnmodified(t *testing.T) {
	txs := subset(5)
	stats, err := aggregator.Aggregate(txs)
	require.NoError(t, err)
	renderer := &fakeRenderer{}

	r, err := Assemble(context.Background(), txs, stats, renderer)

	require.NoError(t, err)
	assert.Equal(t, "line:5", r.LineChart)
	assert.Equal(t, "pie:3/2", r.PieChart)
	assert.Equal(t, stats.DailyCounts, renderer.daily)
	assert.Equal(t, 3, renderer.safe)
	assert.Equal(t, 2, renderer.fraud)
	assert.Equal(t, stats, r.Stats)
}

func TestAssemble_RendererError(t *testing.T) {
	txs := subset(3)
	stats, err := aggregator.Aggregate(txs)
	require.NoError(t, err)
	boom := errors.New("boom")

	_, err = Assemble(context.Background(), txs, stats, &fakeRenderer{lineErr: boom})

	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "line chart")
}

func TestHeadTail_Empty(t *testing.T) {
	assert.Empty(t, Head(nil, SampleSize))
	assert.Empty(t, Tail(nil, SampleSize))
}

func TestReport_CloneSharesNoSlices(t *testing.T) {
	r := Report{
		Stats:    aggregator.Stats{DailyCounts: []aggregator.DailyCount{{Count: 1}}},
		FirstTwo: []Sample{{MerchantID: "M-1"}},
		LastTwo:  []Sample{{MerchantID: "M-2"}},
	}

	clone := r.Clone()
	clone.Stats.DailyCounts[0].Count = 7
	clone.FirstTwo[0].MerchantID = "x"
	clone.LastTwo[0].MerchantID = "y"

	assert.Equal(t, 1, r.Stats.DailyCounts[0].Count)
	assert.Equal(t, "M-1", r.FirstTwo[0].MerchantID)
	assert.Equal(t, "M-2", r.LastTwo[0].MerchantID)
}
