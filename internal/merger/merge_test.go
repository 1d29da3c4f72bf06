package merger_test

import (
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-markets/depthagg/internal/merger"
	"github.com/lattice-markets/depthagg/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func order(price, qty string, seq uint64, ex model.Exchange) model.Order {
	return model.Order{Price: dec(price), Quantity: dec(qty), Sequence: seq, Exchange: ex}
}

func TestMergeEmptyBooksIsSpreadUndefined(t *testing.T) {
	_, err := merger.Merge(map[model.Exchange]model.OrderBook{})
	require.ErrorIs(t, err, merger.ErrSpreadUndefined)
}

func TestMergeOneSidedBookIsSpreadUndefined(t *testing.T) {
	books := map[model.Exchange]model.OrderBook{
		model.Binance: {
			Exchange: model.Binance,
			Bids:     []model.Order{order("9.0", "1.0", 1, model.Binance)},
		},
	}
	_, err := merger.Merge(books)
	require.ErrorIs(t, err, merger.ErrSpreadUndefined)
}

// TestMergeScenarioC mirrors the worked cross-exchange merge example: two
// exchanges each contribute bids and asks, and the top-N selection must
// resolve the price tie at 8.1 in favor of the larger quantity.
func TestMergeScenarioC(t *testing.T) {
	books := map[model.Exchange]model.OrderBook{
		model.Binance: {
			Exchange: model.Binance,
			Bids: []model.Order{
				order("9.2", "1.0", 1, model.Binance),
				order("8.1", "1.0", 2, model.Binance),
			},
			Asks: []model.Order{
				order("10.2", "1.0", 3, model.Binance),
			},
		},
		model.Bitstamp: {
			Exchange: model.Bitstamp,
			Bids: []model.Order{
				order("9.1", "1.2", 4, model.Bitstamp),
				order("8.1", "77.0", 5, model.Bitstamp),
			},
			Asks: []model.Order{
				order("10.1", "1.0", 6, model.Bitstamp),
			},
		},
	}

	summary, err := merger.Merge(books)
	require.NoError(t, err)

	require.Len(t, summary.Bids, 4)
	assert.Equal(t, model.Binance, summary.Bids[0].Exchange)
	assert.True(t, summary.Bids[0].Price.Equal(dec("9.2")))
	assert.Equal(t, model.Bitstamp, summary.Bids[1].Exchange)
	assert.True(t, summary.Bids[1].Price.Equal(dec("9.1")))
	assert.Equal(t, model.Bitstamp, summary.Bids[2].Exchange)
	assert.True(t, summary.Bids[2].Price.Equal(dec("8.1")))
	assert.True(t, summary.Bids[2].Amount.Equal(dec("77.0")))
	assert.Equal(t, model.Binance, summary.Bids[3].Exchange)
	assert.True(t, summary.Bids[3].Price.Equal(dec("8.1")))
	assert.True(t, summary.Bids[3].Amount.Equal(dec("1.0")))

	assert.True(t, summary.Spread.Equal(dec("0.9")))
}

func TestMergeTruncatesToTopN(t *testing.T) {
	var bids []model.Order
	for i := 0; i < 20; i++ {
		bids = append(bids, order(decimalString(i), "1.0", uint64(i+1), model.Binance))
	}
	asks := []model.Order{order("100.0", "1.0", 1000, model.Binance)}

	books := map[model.Exchange]model.OrderBook{
		model.Binance: {Exchange: model.Binance, Bids: bids, Asks: asks},
	}

	summary, err := merger.Merge(books)
	require.NoError(t, err)
	assert.Len(t, summary.Bids, model.TopN)
}

func decimalString(i int) string {
	return dec("1").Add(dec("0.01").Mul(dec(strconv.Itoa(i)))).String()
}

func TestMergeDeterministicRegardlessOfMapOrder(t *testing.T) {
	booksA := map[model.Exchange]model.OrderBook{
		model.Binance: {
			Exchange: model.Binance,
			Bids:     []model.Order{order("9.0", "1.0", 1, model.Binance)},
			Asks:     []model.Order{order("10.0", "1.0", 2, model.Binance)},
		},
		model.Bitstamp: {
			Exchange: model.Bitstamp,
			Bids:     []model.Order{order("9.0", "2.0", 3, model.Bitstamp)},
			Asks:     []model.Order{order("10.0", "2.0", 4, model.Bitstamp)},
		},
	}

	var first model.Summary
	for i := 0; i < 10; i++ {
		summary, err := merger.Merge(booksA)
		require.NoError(t, err)
		if i == 0 {
			first = summary
			continue
		}
		assert.True(t, first.Equal(summary))
	}
}
