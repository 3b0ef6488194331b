package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeSummary_MixedLines(t *testing.T) {
	lines := []SummaryLine{
		{Quantity: 1, UnitPrice: 9_000_000},
		{Quantity: 2, UnitPrice: 50_000},
	}

	s := ComputeSummary(lines, 0, 9)

	assert.Equal(t, int64(9_100_000), s.SubTotal)
	assert.Equal(t, int64(0), s.ItemsDiscount)
	assert.Equal(t, int64(9_100_000), s.TaxableAmount)
	assert.Equal(t, int64(819_000), s.TaxAmount)
	assert.Equal(t, int64(9_919_000), s.GrandTotal)
}

func TestComputeSummary_GrandTotalIdentity(t *testing.T) {
	cases := []struct {
		name           string
		lines          []SummaryLine
		globalDiscount int64
		taxPercent     float64
	}{
		{"no lines", nil, 0, 9},
		{"single line", []SummaryLine{{Quantity: 3, UnitPrice: 120_000}}, 50_000, 10},
		{"line discounts", []SummaryLine{
			{Quantity: 1, UnitPrice: 1_000_000, Discount: 100_000},
			{Quantity: 5, UnitPrice: 40_000, Discount: 20_000},
		}, 0, 5},
		{"fractional tax", []SummaryLine{{Quantity: 7, UnitPrice: 33_333}}, 0, 4.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := ComputeSummary(tc.lines, tc.globalDiscount, tc.taxPercent)
			assert.Equal(t, s.GrandTotal, s.TaxableAmount+s.TaxAmount)
			assert.GreaterOrEqual(t, s.TaxableAmount, int64(0))
		})
	}
}

func TestComputeSummary_DiscountsClampToZero(t *testing.T) {
	lines := []SummaryLine{{Quantity: 1, UnitPrice: 100_000, Discount: 80_000}}

	s := ComputeSummary(lines, 500_000, 9)

	assert.Equal(t, int64(100_000), s.SubTotal)
	assert.Equal(t, int64(0), s.TaxableAmount)
	assert.Equal(t, int64(0), s.TaxAmount)
	assert.Equal(t, int64(0), s.GrandTotal)
}

func TestComputeSummary_SubtotalReconstructsFromLines(t *testing.T) {
	lines := []SummaryLine{
		{Quantity: 2, UnitPrice: 250_000},
		{Quantity: 4, UnitPrice: 75_000},
	}

	s := ComputeSummary(lines, 0, 0)

	var lineSum int64
	for _, l := range lines {
		lineSum += int64(l.Quantity) * l.UnitPrice
	}
	assert.Equal(t, lineSum, s.SubTotal)
	assert.Equal(t, int64(0), s.TaxAmount)
	assert.Equal(t, s.SubTotal, s.GrandTotal)
}
