package normalizer

import (
	"encoding/json"
	"fmt"

	"github.com/lattice-markets/depthagg/internal/model"
)

// BinanceDepth is Binance's partial-book depth snapshot in raw exchange
// form, kept by the connector as last_book for change-detection. Mirrors
// the upstream api::OrderBook{lastUpdateId, bids, asks} shape.
type BinanceDepth struct {
	LastUpdateID int64
	Bids         []rawOrder
	Asks         []rawOrder
}

type binanceDepthWire struct {
	LastUpdateID int64       `json:"lastUpdateId"`
	Bids         []wireLevel `json:"bids"`
	Asks         []wireLevel `json:"asks"`
}

// ParseBinanceDepth parses a raw depth message. It never panics; malformed
// JSON or non-numeric levels are reported as an error.
func ParseBinanceDepth(data []byte) (BinanceDepth, error) {
	var wire binanceDepthWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return BinanceDepth{}, fmt.Errorf("normalizer: parse binance depth: %w", err)
	}
	bids, err := parseLevels(wire.Bids)
	if err != nil {
		return BinanceDepth{}, err
	}
	asks, err := parseLevels(wire.Asks)
	if err != nil {
		return BinanceDepth{}, err
	}
	return BinanceDepth{LastUpdateID: wire.LastUpdateID, Bids: bids, Asks: asks}, nil
}

// Changed reports whether d differs from other under structural equality of
// bids and asks.
func (d BinanceDepth) Changed(other BinanceDepth) bool {
	return !equalOrders(d.Bids, other.Bids) || !equalOrders(d.Asks, other.Asks)
}

// Binance converts Binance depth payloads into canonical order books,
// stamping every order with a fresh sequence from the shared counter.
type Binance struct {
	seq *model.SequenceCounter
}

func NewBinance(seq *model.SequenceCounter) *Binance {
	return &Binance{seq: seq}
}

func (n *Binance) Normalize(d BinanceDepth) model.OrderBook {
	return model.OrderBook{
		Exchange: model.Binance,
		Bids:     n.toOrders(d.Bids),
		Asks:     n.toOrders(d.Asks),
	}
}

func (n *Binance) toOrders(raw []rawOrder) []model.Order {
	limit := len(raw)
	if limit > model.TopN {
		limit = model.TopN
	}
	out := make([]model.Order, 0, limit)
	for _, o := range raw[:limit] {
		out = append(out, model.Order{
			Price:    o.Price,
			Quantity: o.Quantity,
			Sequence: n.seq.Next(),
			Exchange: model.Binance,
		})
	}
	return out
}
