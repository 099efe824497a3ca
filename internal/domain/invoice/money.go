package invoice

import (
	"github.com/shopspring/decimal"
)

// one plus FlatTaxRate, the divisor for extracting the net amount from a
// tax-inclusive gross.
var grossDivisor = decimal.NewFromInt(1).Add(FlatTaxRate)

// CalculateTotals derives the invoice aggregates from the fiscal lines.
//
// Per line: gross = unitPrice × quantity, net = gross / (1 + rate),
// tax = gross − net. The per-line values are accumulated unrounded and each
// aggregate is rounded once at the end to 2 decimal places, half away from
// zero. Summing first and rounding once keeps cumulative drift out of the
// totals; rounding per line and then summing gives different cents and is
// not equivalent.
func CalculateTotals(lines []LineItem) Totals {
	gross := decimal.Zero
	net := decimal.Zero
	tax := decimal.Zero

	for _, li := range lines {
		lineGross := li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
		lineNet := lineGross.Div(grossDivisor)
		lineTax := lineGross.Sub(lineNet)

		gross = gross.Add(lineGross)
		net = net.Add(lineNet)
		tax = tax.Add(lineTax)
	}

	return Totals{
		Gross: gross.Round(2),
		Net:   net.Round(2),
		Tax:   tax.Round(2),
	}
}
