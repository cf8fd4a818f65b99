// Package gst computes invoice totals and the CGST/SGST/IGST split.
//
// All functions are pure: no clock, no I/O, no stored state. Intermediate
// amounts keep four decimal places; only the aggregated figures are rounded
// to two, so rounding drift never accumulates across line items.
package gst

import "github.com/shopspring/decimal"

// LineItem is one invoice or quotation line as the engine sees it.
type LineItem struct {
	Quantity  int
	UnitPrice decimal.Decimal
	TaxRate   decimal.Decimal // fraction, e.g. 0.18 for 18% GST
}

// LineTax is the per-line computation result, unrounded.
type LineTax struct {
	Amount decimal.Decimal // quantity x unit price
	Tax    decimal.Decimal // amount x tax rate
}

// Breakdown is the full tax computation for a document.
type Breakdown struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	CGST     decimal.Decimal
	SGST     decimal.Decimal
	IGST     decimal.Decimal
	Total    decimal.Decimal
	Lines    []LineTax
}

const intermediatePrecision = 4

// Calculate computes subtotal, per-line tax and the tax split for the given
// lines. Intra-state supply (place of supply equals the seller state) splits
// the tax evenly into CGST and SGST; inter-state supply is all IGST.
func Calculate(lines []LineItem, sellerStateCode, placeOfSupply string) Breakdown {
	subtotal := decimal.Zero
	tax := decimal.Zero
	perLine := make([]LineTax, 0, len(lines))

	for _, l := range lines {
		amount := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
		lineTax := amount.Mul(l.TaxRate).Round(intermediatePrecision)
		subtotal = subtotal.Add(amount)
		tax = tax.Add(lineTax)
		perLine = append(perLine, LineTax{Amount: amount, Tax: lineTax})
	}

	subtotal = subtotal.Round(2)
	tax = tax.Round(2)

	b := Breakdown{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
		Lines:    perLine,
		CGST:     decimal.Zero,
		SGST:     decimal.Zero,
		IGST:     decimal.Zero,
	}

	if placeOfSupply == sellerStateCode {
		half := tax.Div(decimal.NewFromInt(2)).Round(2)
		b.CGST = half
		// SGST takes the remainder so the two halves always sum to the tax
		b.SGST = tax.Sub(half)
	} else {
		b.IGST = tax
	}

	return b
}
