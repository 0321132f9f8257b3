package quote

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ComputeTotals sums the items and applies both rates to the subtotal.
// Values are kept at full precision; rounding is a display concern.
func ComputeTotals(items []LineItem, taxRatePct, commissionRatePct decimal.Decimal) (Totals, error) {
	if err := checkRate("tax", taxRatePct); err != nil {
		return Totals{}, err
	}
	if err := checkRate("commission", commissionRatePct); err != nil {
		return Totals{}, err
	}

	subtotal := decimal.Zero
	for i, it := range items {
		if it.UnitValue.IsNegative() {
			return Totals{}, invalidf("item %d (%q): unit value %s is negative", i+1, it.Description, it.UnitValue)
		}
		subtotal = subtotal.Add(it.UnitValue)
	}

	tax := subtotal.Mul(taxRatePct).Div(hundred)
	commission := subtotal.Mul(commissionRatePct).Div(hundred)

	return Totals{
		Subtotal:   subtotal,
		Tax:        tax,
		Commission: commission,
		Total:      subtotal.Add(tax).Add(commission),
	}, nil
}

func checkRate(name string, pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return invalidf("%s rate %s%% is outside [0, 100]", name, pct)
	}
	return nil
}
