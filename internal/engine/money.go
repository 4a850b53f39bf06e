package engine

import "github.com/shopspring/decimal"

// roundMoney rounds to the cent using banker's rounding (round-half-to-even),
// the only rounding mode this engine uses at an arithmetic boundary, per the
// cent-precision invariant.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}

// clampZero floors a base or tax amount at zero; negative results from a
// trade-in or rebate larger than the base are never reported as negative.
func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func minDec(a, b decimal.Decimal) decimal.Decimal {
	return decimal.Min(a, b)
}
