package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/lattice-markets/depthagg/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestOrderBetterPriceWinsBids(t *testing.T) {
	higher := model.Order{Price: dec("9.2"), Quantity: dec("1.0"), Sequence: 2}
	lower := model.Order{Price: dec("9.1"), Quantity: dec("1.0"), Sequence: 1}

	assert.True(t, higher.Better(lower, true))
	assert.False(t, lower.Better(higher, true))
}

func TestOrderBetterPriceWinsAsks(t *testing.T) {
	higher := model.Order{Price: dec("10.2"), Quantity: dec("1.0"), Sequence: 1}
	lower := model.Order{Price: dec("10.1"), Quantity: dec("1.0"), Sequence: 2}

	assert.True(t, lower.Better(higher, false))
	assert.False(t, higher.Better(lower, false))
}

func TestOrderBetterTieOnPriceUsesQuantity(t *testing.T) {
	big := model.Order{Price: dec("8.1"), Quantity: dec("77.0"), Sequence: 5}
	small := model.Order{Price: dec("8.1"), Quantity: dec("1.0"), Sequence: 1}

	assert.True(t, big.Better(small, true))
	assert.True(t, big.Better(small, false))
}

func TestOrderBetterTieOnPriceAndQuantityUsesSequence(t *testing.T) {
	older := model.Order{Price: dec("8.1"), Quantity: dec("1.0"), Sequence: 1}
	newer := model.Order{Price: dec("8.1"), Quantity: dec("1.0"), Sequence: 2}

	assert.True(t, older.Better(newer, true))
	assert.False(t, newer.Better(older, true))
}
