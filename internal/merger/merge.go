// Package merger consolidates the latest per-exchange order books into a
// single cross-exchange top-of-book Summary.
package merger

import (
	"errors"

	"github.com/lattice-markets/depthagg/internal/model"
)

// ErrSpreadUndefined is returned by Merge when either side of the merged
// book is empty, making the spread meaningless.
var ErrSpreadUndefined = errors.New("merger: spread undefined, one side of book is empty")

// Merge selects the top model.TopN levels per side across all books in
// books (keyed by exchange, one book per exchange) and returns the
// resulting Summary. Levels within a side are ordered by model.Order.Better;
// ties are impossible since Order.Sequence is unique process-wide, so the
// result does not depend on map/slice iteration order.
func Merge(books map[model.Exchange]model.OrderBook) (model.Summary, error) {
	var bids, asks []model.Order
	for _, book := range books {
		bids = append(bids, book.Bids...)
		asks = append(asks, book.Asks...)
	}

	topBids := selectTopN(bids, true)
	topAsks := selectTopN(asks, false)

	summary := model.Summary{
		Bids: toLevels(topBids),
		Asks: toLevels(topAsks),
	}

	if len(topBids) == 0 || len(topAsks) == 0 {
		return summary, ErrSpreadUndefined
	}
	summary.Spread = topAsks[0].Price.Sub(topBids[0].Price)
	return summary, nil
}

// selectTopN returns the best model.TopN orders from all, ordered best
// first according to isBid. It is a straightforward selection sort over a
// copy of all; the inputs are small (at most TopN per exchange) so this
// beats the overhead of a heap for the expected fan-in.
func selectTopN(all []model.Order, isBid bool) []model.Order {
	pool := make([]model.Order, len(all))
	copy(pool, all)

	n := model.TopN
	if n > len(pool) {
		n = len(pool)
	}

	result := make([]model.Order, 0, n)
	for i := 0; i < n; i++ {
		bestIdx := 0
		for j, candidate := range pool {
			if candidate.Better(pool[bestIdx], isBid) {
				bestIdx = j
			}
		}
		result = append(result, pool[bestIdx])
		pool = append(pool[:bestIdx], pool[bestIdx+1:]...)
	}
	return result
}

func toLevels(orders []model.Order) []model.Level {
	levels := make([]model.Level, len(orders))
	for i, o := range orders {
		levels[i] = model.Level{Exchange: o.Exchange, Price: o.Price, Amount: o.Quantity}
	}
	return levels
}
