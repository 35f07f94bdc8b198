package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestExtendRoundsPerLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		price string
		qty   int
		want  string
	}{
		{name: "whole amounts", price: "199.99", qty: 2, want: "399.98"},
		{name: "third of a unit", price: "0.333", qty: 3, want: "1.00"},
		{name: "rounds half up", price: "1.005", qty: 1, want: "1.01"},
		{name: "zero quantity", price: "10.00", qty: 0, want: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extend(dec(tt.price), tt.qty)
			assert.True(t, got.Equal(dec(tt.want)), "Extend(%s, %d) = %s, want %s", tt.price, tt.qty, got, tt.want)
		})
	}
}

func TestCommissionSplit(t *testing.T) {
	t.Parallel()

	subtotal := dec("1000.00")
	commission := Commission(subtotal, dec("10"))
	require.True(t, commission.Equal(dec("100.00")), "commission = %s", commission)

	earnings := subtotal.Sub(commission)
	require.True(t, earnings.Equal(dec("900.00")), "earnings = %s", earnings)
}

func TestCommissionRoundsFractions(t *testing.T) {
	t.Parallel()

	// 7.5% of 99.99 is 7.49925 and must land on 7.50.
	got := Commission(dec("99.99"), dec("7.5"))
	assert.True(t, got.Equal(dec("7.50")), "got %s", got)
}

func TestWithinEpsilon(t *testing.T) {
	t.Parallel()

	assert.True(t, WithinEpsilon(dec("100.00"), dec("100.004")))
	assert.True(t, WithinEpsilon(dec("100.00"), dec("99.995")))
	assert.False(t, WithinEpsilon(dec("100.00"), dec("100.01")))
	assert.False(t, WithinEpsilon(dec("100.00"), dec("105.00")))
}

func TestSum(t *testing.T) {
	t.Parallel()

	total := Sum(dec("0.10"), dec("0.20"), dec("0.30"))
	assert.True(t, total.Equal(dec("0.60")), "got %s", total)
	assert.True(t, Sum().IsZero())
}
