package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeeAdjustedProfit_Exact(t *testing.T) {
	// Comprar a $12.00, vender a $18.75 con fee 7%:
	// 18.75 × 0.93 - 12.00 = 5.4375
	profit := FeeAdjustedProfit(1200, 1875, 0.07)
	assert.InDelta(t, 5.4375, profit, 1e-9)
}

func TestDiffPercent(t *testing.T) {
	assert.InDelta(t, 56.25, DiffPercent(1200, 1875), 1e-9)
	assert.InDelta(t, 0, DiffPercent(0, 1875), 1e-9)
	assert.InDelta(t, -50, DiffPercent(1000, 500), 1e-9)
}

func TestDiscountPercent(t *testing.T) {
	// (1980 - 1550) / 1980 × 100
	assert.InDelta(t, 21.7171717, DiscountPercent(1550, 1980), 1e-6)
	assert.InDelta(t, 0, DiscountPercent(1550, 0), 1e-9)
}

func TestDollarsToCents_Rounds(t *testing.T) {
	assert.Equal(t, Cents(1550), DollarsToCents(15.50))
	assert.Equal(t, Cents(1), DollarsToCents(0.009))
	assert.Equal(t, Cents(0), DollarsToCents(-3))
}

func TestCents_Usable(t *testing.T) {
	assert.True(t, Cents(1).Usable())
	assert.False(t, Cents(0).Usable())
	assert.False(t, Cents(-10).Usable())
}

func TestCents_String(t *testing.T) {
	assert.Equal(t, "$15.50", Cents(1550).String())
}
