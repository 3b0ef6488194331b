package finance

import "github.com/shopspring/decimal"

// SummaryLine is one order line as seen by the summary calculator
type SummaryLine struct {
	Quantity  int
	UnitPrice int64
	Discount  int64
}

// Summary holds the derived totals of an order. All amounts are in minor
// currency units.
type Summary struct {
	SubTotal      int64 `json:"sub_total"`
	ItemsDiscount int64 `json:"items_discount"`
	TaxableAmount int64 `json:"taxable_amount"`
	TaxAmount     int64 `json:"tax_amount"`
	GrandTotal    int64 `json:"grand_total"`
}

// ComputeSummary derives order totals from line items. It is the single
// call site for totals across creation, preview and reconciliation so the
// figures can never diverge.
//
// The taxable base is clamped at zero: discounts can swallow the subtotal
// but never drive the base negative.
func ComputeSummary(lines []SummaryLine, globalDiscount int64, taxPercent float64) Summary {
	var subTotal, itemsDiscount int64
	for _, line := range lines {
		subTotal += int64(line.Quantity) * line.UnitPrice
		itemsDiscount += line.Discount
	}

	taxable := subTotal - itemsDiscount - globalDiscount
	if taxable < 0 {
		taxable = 0
	}

	tax := decimal.NewFromInt(taxable).
		Mul(decimal.NewFromFloat(taxPercent)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()

	return Summary{
		SubTotal:      subTotal,
		ItemsDiscount: itemsDiscount,
		TaxableAmount: taxable,
		TaxAmount:     tax,
		GrandTotal:    taxable + tax,
	}
}
