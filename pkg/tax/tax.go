package tax

import "github.com/shopspring/decimal"

// Type selects how a tax rate is applied to an amount.
type Type string

const (
	Percentage Type = "percentage"
	Fixed      Type = "fixed"
	Compound   Type = "compound"
)

var hundred = decimal.NewFromInt(100)

// Calculate returns the tax for an amount. Rates of zero or below yield
// zero tax. Fixed rates are flat surcharges returned verbatim, ignoring
// the amount. Compound applies amount*(1+rate/100)-amount; for a single
// application this equals percentage and is kept for multi-stage
// stacking. Anything else is treated as percentage.
func Calculate(amount, rate decimal.Decimal, taxType Type) decimal.Decimal {
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	switch taxType {
	case Fixed:
		return rate
	case Compound:
		factor := decimal.NewFromInt(1).Add(rate.Div(hundred))
		return amount.Mul(factor).Sub(amount)
	default:
		return amount.Mul(rate).Div(hundred)
	}
}

// TotalWithTax returns amount plus its tax.
func TotalWithTax(amount, rate decimal.Decimal, taxType Type) decimal.Decimal {
	return amount.Add(Calculate(amount, rate, taxType))
}
