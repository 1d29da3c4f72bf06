package model

import "github.com/shopspring/decimal"

// Level is a single wire-shaped price level in a published Summary.
type Level struct {
	Exchange Exchange
	Price    decimal.Decimal
	Amount   decimal.Decimal
}

// Summary is the consolidated, cross-exchange top-of-book view published by
// the merger.
type Summary struct {
	Spread decimal.Decimal
	Bids   []Level
	Asks   []Level
}

// Equal reports value equality over (spread, bids, asks), used by the
// merger to decide whether a freshly computed Summary is worth publishing.
func (s Summary) Equal(other Summary) bool {
	if !s.Spread.Equal(other.Spread) {
		return false
	}
	return equalLevels(s.Bids, other.Bids) && equalLevels(s.Asks, other.Asks)
}

func equalLevels(a, b []Level) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Exchange != b[i].Exchange {
			return false
		}
		if !a[i].Price.Equal(b[i].Price) {
			return false
		}
		if !a[i].Amount.Equal(b[i].Amount) {
			return false
		}
	}
	return true
}
