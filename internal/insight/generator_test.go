package insight

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"sift/internal/market"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) ID() string { return "mock" }

func (m *MockProvider) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func fullSnapshot() market.Snapshot {
	return market.Snapshot{
		Symbol:          "BTCUSDT",
		Date:            "2025-01-02",
		FundingRate:     0.0001,
		HasFunding:      true,
		OpenInterest:    1_234_567.89,
		HasOpenInterest: true,
		LongShortRatio:  1.8,
		HasLongShort:    true,
		TakerRatio:      1.1,
		HasTakerRatio:   true,
		Book: market.ImbalanceMetrics{
			Imbalance: decimal.NewFromFloat(12.5),
			Summary:   market.ImbalanceBuyWall,
		},
		HasBook: true,
		CVD: market.CVDMetrics{
			Delta:   decimal.NewFromFloat(3.25),
			Summary: market.CVDHiddenBuying,
		},
		HasCVD: true,
	}
}

func TestBuildPrompt(t *testing.T) {
	t.Run("EmbedsAllFeatures", func(t *testing.T) {
		prompt := BuildPrompt(fullSnapshot())
		assert.Contains(t, prompt, "Symbol: BTCUSDT")
		assert.Contains(t, prompt, "Funding Rate: 0.000100")
		assert.Contains(t, prompt, "Open Interest: 1234567.89")
		assert.Contains(t, prompt, "Long/Short Ratio: 1.80")
		assert.Contains(t, prompt, "Taker Buy/Sell Ratio: 1.10")
		assert.Contains(t, prompt, "Order Book Imbalance: 12.50 (Strong Buy Wall)")
		assert.Contains(t, prompt, "CVD: 3.25 (Showing hidden buying)")
		assert.Contains(t, prompt, "Confidence Score (0-100%)")
		assert.Contains(t, prompt, "Recommended Action (Long / Short / Avoid)")
	})

	t.Run("MissingFeatureRendersUnavailable", func(t *testing.T) {
		snap := fullSnapshot()
		snap.HasCVD = false
		prompt := BuildPrompt(snap)
		assert.Contains(t, prompt, "CVD: unavailable")
		assert.NotContains(t, prompt, "3.25")
	})
}

func TestModelGenerator(t *testing.T) {
	t.Run("ScoreExtractedFromResponse", func(t *testing.T) {
		p := new(MockProvider)
		p.On("Complete", mock.Anything, mock.MatchedBy(func(prompt string) bool {
			return strings.Contains(prompt, "Symbol: BTCUSDT")
		})).Return("Market Bias: Bullish\nConfidence: 92%\nRisk: Medium", nil)

		g, err := NewModelGenerator(p)
		require.NoError(t, err)

		res, err := g.Generate(context.Background(), fullSnapshot())
		require.NoError(t, err)
		assert.Equal(t, 92, res.Score)
		assert.Equal(t, 92, res.RawScore)
		assert.Contains(t, res.Text, "Bullish")
	})

	t.Run("UnparseableResponseScoresZero", func(t *testing.T) {
		p := new(MockProvider)
		p.On("Complete", mock.Anything, mock.Anything).Return("strongly bullish, no number given", nil)

		g, err := NewModelGenerator(p)
		require.NoError(t, err)

		res, err := g.Generate(context.Background(), fullSnapshot())
		require.NoError(t, err)
		assert.Equal(t, 0, res.Score)
	})

	t.Run("OutOfRangeScoreClamped", func(t *testing.T) {
		p := new(MockProvider)
		p.On("Complete", mock.Anything, mock.Anything).Return("Confidence: 250%", nil)

		g, err := NewModelGenerator(p)
		require.NoError(t, err)

		res, err := g.Generate(context.Background(), fullSnapshot())
		require.NoError(t, err)
		assert.Equal(t, 250, res.RawScore)
		assert.Equal(t, 100, res.Score)
	})

	t.Run("ProviderFailureIsAnError", func(t *testing.T) {
		p := new(MockProvider)
		p.On("Complete", mock.Anything, mock.Anything).Return("", fmt.Errorf("connection refused"))

		g, err := NewModelGenerator(p)
		require.NoError(t, err)

		_, err = g.Generate(context.Background(), fullSnapshot())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "BTCUSDT")
	})

	t.Run("NilProviderRejected", func(t *testing.T) {
		_, err := NewModelGenerator(nil)
		assert.Error(t, err)
	})
}
