package normalizer

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// wireLevel is the [price, quantity] decimal-string pair both supported
// exchanges use on the wire for each level.
type wireLevel [2]string

type rawOrder struct {
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

func parseLevels(levels []wireLevel) ([]rawOrder, error) {
	out := make([]rawOrder, 0, len(levels))
	for _, lvl := range levels {
		price, err := decimal.NewFromString(lvl[0])
		if err != nil {
			return nil, fmt.Errorf("normalizer: bad price %q: %w", lvl[0], err)
		}
		qty, err := decimal.NewFromString(lvl[1])
		if err != nil {
			return nil, fmt.Errorf("normalizer: bad quantity %q: %w", lvl[1], err)
		}
		out = append(out, rawOrder{Price: price, Quantity: qty})
	}
	return out, nil
}

func equalOrders(a, b []rawOrder) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Price.Equal(b[i].Price) || !a[i].Quantity.Equal(b[i].Quantity) {
			return false
		}
	}
	return true
}
