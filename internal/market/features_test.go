package market

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	funding     float64
	fundingErr  error
	oi          float64
	oiErr       error
	lsRatio     float64
	lsErr       error
	takerRatio  float64
	takerErr    error
	bids, asks  []BookLevel
	bookErr     error
	trades      []Trade
	tradesErr   error
	fetchCounts map[string]int
}

func newStubSource() *stubSource {
	return &stubSource{
		funding:     0.0001,
		oi:          1_000_000,
		lsRatio:     1.8,
		takerRatio:  1.1,
		bids:        []BookLevel{{Quantity: decimal.NewFromInt(5)}},
		asks:        []BookLevel{{Quantity: decimal.NewFromInt(3)}},
		trades:      []Trade{{Quantity: decimal.NewFromInt(2)}},
		fetchCounts: map[string]int{},
	}
}

func (s *stubSource) FundingRate(_ context.Context, _ string) (float64, error) {
	s.fetchCounts["funding"]++
	return s.funding, s.fundingErr
}

func (s *stubSource) OpenInterest(_ context.Context, _ string) (float64, error) {
	s.fetchCounts["oi"]++
	return s.oi, s.oiErr
}

func (s *stubSource) GlobalLongShortRatio(_ context.Context, _, _ string) (float64, error) {
	s.fetchCounts["lsr"]++
	return s.lsRatio, s.lsErr
}

func (s *stubSource) TakerBuySellRatio(_ context.Context, _, _ string) (float64, error) {
	s.fetchCounts["taker"]++
	return s.takerRatio, s.takerErr
}

func (s *stubSource) OrderBook(_ context.Context, _ string, _ int) ([]BookLevel, []BookLevel, error) {
	s.fetchCounts["book"]++
	return s.bids, s.asks, s.bookErr
}

func (s *stubSource) RecentTrades(_ context.Context, _ string, _ int) ([]Trade, error) {
	s.fetchCounts["trades"]++
	return s.trades, s.tradesErr
}

func TestFeatureServiceCollect(t *testing.T) {
	t.Run("CompleteSnapshot", func(t *testing.T) {
		src := newStubSource()
		svc, err := NewFeatureService(src, FeatureServiceConfig{})
		require.NoError(t, err)

		snap := svc.Collect(context.Background(), "BTCUSDT", "2025-01-02")
		assert.True(t, snap.Complete())
		assert.Empty(t, snap.Missing())
		assert.Equal(t, "BTCUSDT", snap.Symbol)
		assert.Equal(t, "2025-01-02", snap.Date)
		assert.Equal(t, 0.0001, snap.FundingRate)
		assert.Equal(t, CVDHiddenBuying, snap.CVD.Summary)
		assert.Equal(t, ImbalanceBuyWall, snap.Book.Summary)
	})

	t.Run("FailedSubFetchIsUnavailableNotFatal", func(t *testing.T) {
		src := newStubSource()
		src.lsErr = fmt.Errorf("status=429")
		svc, err := NewFeatureService(src, FeatureServiceConfig{})
		require.NoError(t, err)

		snap := svc.Collect(context.Background(), "ETHUSDT", "2025-01-02")
		assert.False(t, snap.Complete())
		assert.Equal(t, []string{"long_short_ratio"}, snap.Missing())
		assert.Contains(t, snap.Errors, "long/short ratio")
		// remaining sub-fetches still ran
		assert.Equal(t, 1, src.fetchCounts["trades"])
		assert.Equal(t, 1, src.fetchCounts["book"])
	})

	t.Run("EmptyTradesAreUnavailable", func(t *testing.T) {
		src := newStubSource()
		src.trades = nil
		svc, err := NewFeatureService(src, FeatureServiceConfig{})
		require.NoError(t, err)

		snap := svc.Collect(context.Background(), "ETHUSDT", "2025-01-02")
		assert.False(t, snap.HasCVD)
		assert.Contains(t, snap.Missing(), "cvd")
	})

	t.Run("NilSourceRejected", func(t *testing.T) {
		_, err := NewFeatureService(nil, FeatureServiceConfig{})
		assert.Error(t, err)
	})
}
