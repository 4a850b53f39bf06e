// Package rules builds the engine's default state-rule registry: one
// TaxRulesConfig per implemented state, plus the cross-state reciprocity
// matrix. Nothing here is read by the engine itself — it is composition
// root data, wired up once at startup (see cmd/server) and otherwise
// immutable.
package rules

import (
	"github.com/shopspring/decimal"

	"github.com/tesseract-nexus/vehicle-tax-engine/internal/engine"
)

func pct(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func days(n int) *int {
	return &n
}

func standardRebateRules(manufacturerTaxable, dealerTaxable bool) []engine.RebateRule {
	return []engine.RebateRule{
		{Scope: engine.RebateManufacturer, Taxable: manufacturerTaxable},
		{Scope: engine.RebateDealer, Taxable: dealerTaxable},
	}
}

func standardFeeRules(taxableCodes ...string) map[string]engine.FeeTaxRule {
	rules := make(map[string]engine.FeeTaxRule, len(taxableCodes))
	for _, code := range taxableCodes {
		rules[code] = engine.FeeTaxRule{Taxable: true}
	}
	return rules
}
