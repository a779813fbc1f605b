package universe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSymbols(t *testing.T) {
	t.Run("DedupeUppercaseSuffix", func(t *testing.T) {
		out, err := NormalizeSymbols([]string{"btc", "BTCUSDT", " eth ", ""}, "USDT")
		require.NoError(t, err)
		assert.Equal(t, []string{"BTCUSDT", "ETHUSDT"}, out)
	})

	t.Run("EmptyListRejected", func(t *testing.T) {
		_, err := NormalizeSymbols(nil, "USDT")
		assert.Error(t, err)
	})

	t.Run("BlankEntriesRejected", func(t *testing.T) {
		_, err := NormalizeSymbols([]string{"", "  "}, "USDT")
		assert.Error(t, err)
	})
}

func TestStaticProvider(t *testing.T) {
	p := NewStaticProvider([]string{"sol", "doge"}, "usdt")
	assert.Equal(t, "static", p.Name())
	out, err := p.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"SOLUSDT", "DOGEUSDT"}, out)
}
