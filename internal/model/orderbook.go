package model

// OrderBook is the canonical, normalized depth snapshot produced by a
// Normalizer for a single exchange. Bids are sorted strictly descending by
// price, asks strictly ascending, each truncated to at most TopN entries.
type OrderBook struct {
	Exchange Exchange
	Bids     []Order
	Asks     []Order
}
