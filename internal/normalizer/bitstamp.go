package normalizer

import (
	"encoding/json"
	"fmt"

	"github.com/lattice-markets/depthagg/internal/model"
)

// BitstampDepth is Bitstamp's order_book_<symbol> channel payload in raw
// exchange form, kept by the connector as last_book for change-detection.
type BitstampDepth struct {
	Timestamp      string
	Microtimestamp string
	Bids           []rawOrder
	Asks           []rawOrder
}

type bitstampDepthWire struct {
	Timestamp      string      `json:"timestamp"`
	Microtimestamp string      `json:"microtimestamp"`
	Bids           []wireLevel `json:"bids"`
	Asks           []wireLevel `json:"asks"`
}

// ParseBitstampDepth parses the `data` object of a Bitstamp update message.
// It never panics; malformed JSON or non-numeric levels are reported as an
// error.
func ParseBitstampDepth(data []byte) (BitstampDepth, error) {
	var wire bitstampDepthWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return BitstampDepth{}, fmt.Errorf("normalizer: parse bitstamp depth: %w", err)
	}
	bids, err := parseLevels(wire.Bids)
	if err != nil {
		return BitstampDepth{}, err
	}
	asks, err := parseLevels(wire.Asks)
	if err != nil {
		return BitstampDepth{}, err
	}
	return BitstampDepth{
		Timestamp:      wire.Timestamp,
		Microtimestamp: wire.Microtimestamp,
		Bids:           bids,
		Asks:           asks,
	}, nil
}

// Changed reports whether d differs from other under structural equality of
// bids and asks.
func (d BitstampDepth) Changed(other BitstampDepth) bool {
	return !equalOrders(d.Bids, other.Bids) || !equalOrders(d.Asks, other.Asks)
}

// Bitstamp converts Bitstamp depth payloads into canonical order books,
// stamping every order with a fresh sequence from the shared counter.
type Bitstamp struct {
	seq *model.SequenceCounter
}

func NewBitstamp(seq *model.SequenceCounter) *Bitstamp {
	return &Bitstamp{seq: seq}
}

func (n *Bitstamp) Normalize(d BitstampDepth) model.OrderBook {
	return model.OrderBook{
		Exchange: model.Bitstamp,
		Bids:     n.toOrders(d.Bids),
		Asks:     n.toOrders(d.Asks),
	}
}

func (n *Bitstamp) toOrders(raw []rawOrder) []model.Order {
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
			Exchange: model.Bitstamp,
		})
	}
	return out
}
