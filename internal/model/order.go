package model

import "github.com/shopspring/decimal"

// TopN is the maximum depth kept on each side of a book, per exchange and
// after merging.
const TopN = 10

// Order is a single resting level tagged with the venue and sequence it
// arrived with. Sequence is assigned once, at normalization time, and never
// changes afterwards.
type Order struct {
	Price    decimal.Decimal
	Quantity decimal.Decimal
	Sequence uint64
	Exchange Exchange
}

// Better reports whether o ranks ahead of other on the given side of the
// book. The ordering is total: price first (direction depends on isBid),
// then quantity (higher wins), then arrival order (lower sequence, i.e.
// older, wins). Because Sequence is unique process-wide, this never admits a
// true tie.
func (o Order) Better(other Order, isBid bool) bool {
	if isBid {
		if o.Price.GreaterThan(other.Price) {
			return true
		}
		if o.Price.LessThan(other.Price) {
			return false
		}
	} else {
		if o.Price.LessThan(other.Price) {
			return true
		}
		if o.Price.GreaterThan(other.Price) {
			return false
		}
	}
	if o.Quantity.GreaterThan(other.Quantity) {
		return true
	}
	if o.Quantity.LessThan(other.Quantity) {
		return false
	}
	return o.Sequence < other.Sequence
}
