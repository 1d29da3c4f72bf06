package normalizer_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-markets/depthagg/internal/model"
	"github.com/lattice-markets/depthagg/internal/normalizer"
)

func decFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

const binancePayload = `{
  "lastUpdateId": 160,
  "bids": [["9.2", "1.0"], ["8.1", "1.0"]],
  "asks": [["10.2", "1.0"], ["11.0", "2.0"]]
}`

func TestParseBinanceDepth(t *testing.T) {
	depth, err := normalizer.ParseBinanceDepth([]byte(binancePayload))
	require.NoError(t, err)
	assert.Len(t, depth.Bids, 2)
	assert.Len(t, depth.Asks, 2)
	assert.True(t, depth.Bids[0].Price.Equal(decFromString(t, "9.2")))
}

func TestParseBinanceDepthMalformed(t *testing.T) {
	_, err := normalizer.ParseBinanceDepth([]byte(`{"bids": [["notanumber", "1.0"]]}`))
	assert.Error(t, err)
}

func TestBinanceDepthChanged(t *testing.T) {
	a, err := normalizer.ParseBinanceDepth([]byte(binancePayload))
	require.NoError(t, err)
	b, err := normalizer.ParseBinanceDepth([]byte(binancePayload))
	require.NoError(t, err)

	assert.False(t, a.Changed(b))

	c, err := normalizer.ParseBinanceDepth([]byte(`{"lastUpdateId":161,"bids":[["9.3","1.0"]],"asks":[["10.2","1.0"]]}`))
	require.NoError(t, err)
	assert.True(t, a.Changed(c))
}

func TestBinanceNormalizeKeepsLevelsAndStampsSequence(t *testing.T) {
	depth, err := normalizer.ParseBinanceDepth([]byte(binancePayload))
	require.NoError(t, err)

	var seq model.SequenceCounter
	n := normalizer.NewBinance(&seq)
	book := n.Normalize(depth)

	assert.Equal(t, model.Binance, book.Exchange)
	assert.Len(t, book.Bids, 2)
	assert.NotZero(t, book.Bids[0].Sequence)
	assert.NotEqual(t, book.Bids[0].Sequence, book.Bids[1].Sequence)
	for _, o := range append(append([]model.Order{}, book.Bids...), book.Asks...) {
		assert.Equal(t, model.Binance, o.Exchange)
	}
}
