package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateLease_IllinoisChicagoSurcharge(t *testing.T) {
	rules := TaxRulesConfig{
		StateCode: "IL",
		Lease: LeaseRules{
			Method:           LeaseMonthly,
			TaxCapReduction:  true,
			RebateBehavior:   LeaseRebateFollowRetailRule,
			DocFeeTaxability: LeaseDocFeeAlways,
			TradeInCredit:    LeaseTradeInCreditFull,
			SpecialScheme:    LeaseSchemeIlChicagoCook,
		},
		RebateRules: []RebateRule{{Scope: RebateManufacturer, Taxable: false}, {Scope: RebateDealer, Taxable: false}},
		Extras:      RuleExtras{IlChicagoSurchargeRate: decimal.NewFromFloat(0.08)},
	}
	input := TaxCalculationInput{
		StateCode:    "IL",
		DealType:     DealLease,
		GrossCapCost: decimal.NewFromInt(35000),
		BasePayment:  decimal.NewFromInt(450),
		PaymentCount: 36,
		Rates:        []RateEntry{{Label: "state", Rate: decimal.NewFromFloat(0.095)}},
	}

	result, err := CalculateLease(input, rules)
	require.Nil(t, err)
	require.NotNil(t, result.LeaseBreakdown)

	assert.True(t, result.LeaseBreakdown.PaymentTaxesPerPeriod.TotalTax.Equal(decimal.NewFromFloat(78.75)),
		"per-period tax: got %s", result.LeaseBreakdown.PaymentTaxesPerPeriod.TotalTax)
	assert.True(t, result.LeaseBreakdown.TotalTaxOverTerm.Equal(decimal.NewFromFloat(2835.00)),
		"total over term: got %s", result.LeaseBreakdown.TotalTaxOverTerm)
	assert.True(t, result.LeaseBreakdown.UpfrontTaxes.TotalTax.IsZero(), "no doc fee supplied, upfront tax should be zero")
}

func TestCalculateLease_PennsylvaniaSurcharge(t *testing.T) {
	rules := TaxRulesConfig{
		StateCode: "PA",
		Lease: LeaseRules{
			Method:           LeaseMonthly,
			TaxCapReduction:  true,
			RebateBehavior:   LeaseRebateFollowRetailRule,
			DocFeeTaxability: LeaseDocFeeAlways,
			TradeInCredit:    LeaseTradeInCreditFull,
			SpecialScheme:    LeaseSchemePaLeaseTax,
		},
		RebateRules: []RebateRule{{Scope: RebateManufacturer, Taxable: false}, {Scope: RebateDealer, Taxable: false}},
		Extras:      RuleExtras{PaLeaseSurchargeRate: decimal.NewFromFloat(0.03)},
	}
	input := TaxCalculationInput{
		StateCode:    "PA",
		DealType:     DealLease,
		BasePayment:  decimal.NewFromInt(450),
		PaymentCount: 36,
		Rates:        []RateEntry{{Label: "state", Rate: decimal.NewFromFloat(0.06)}},
	}

	result, err := CalculateLease(input, rules)
	require.Nil(t, err)
	require.NotNil(t, result.LeaseBreakdown)

	assert.True(t, result.LeaseBreakdown.PaymentTaxesPerPeriod.TotalTax.Equal(decimal.NewFromFloat(40.50)),
		"per-period tax: got %s", result.LeaseBreakdown.PaymentTaxesPerPeriod.TotalTax)
	assert.True(t, result.LeaseBreakdown.TotalTaxOverTerm.Equal(decimal.NewFromFloat(1458.00)),
		"total over term: got %s", result.LeaseBreakdown.TotalTaxOverTerm)
}

func TestCalculateLease_IowaInvertedTradeIn(t *testing.T) {
	rules := TaxRulesConfig{
		StateCode: "IA",
		Lease: LeaseRules{
			Method:           LeaseMonthly,
			TaxCapReduction:  true,
			RebateBehavior:   LeaseRebateFollowRetailRule,
			DocFeeTaxability: LeaseDocFeeNever,
			TradeInCredit:    LeaseTradeInCreditNone,
			SpecialScheme:    LeaseSchemeNone,
		},
		RebateRules: []RebateRule{{Scope: RebateManufacturer, Taxable: false}, {Scope: RebateDealer, Taxable: false}},
		Extras:      RuleExtras{FlatFeeAmount: decimal.NewFromInt(10), FlatFeeLabel: "iowa_title_fee"},
	}
	input := TaxCalculationInput{
		StateCode:            "IA",
		DealType:             DealLease,
		BasePayment:          decimal.NewFromInt(400),
		PaymentCount:         36,
		CapReductionCash:     decimal.NewFromInt(2000),
		CapReductionTradeIn:  decimal.NewFromInt(5000),
		Rates:                []RateEntry{{Label: "state", Rate: decimal.NewFromFloat(0.05)}},
	}

	result, err := CalculateLease(input, rules)
	require.Nil(t, err)
	require.NotNil(t, result.LeaseBreakdown)

	assert.True(t, result.LeaseBreakdown.TotalTaxOverTerm.Equal(decimal.NewFromFloat(1080.00)),
		"total over term: got %s", result.LeaseBreakdown.TotalTaxOverTerm)
}

func TestCalculateLease_TotalEqualsUpfrontPlusPerPeriodTimesCount(t *testing.T) {
	rules := TaxRulesConfig{
		StateCode: "IN",
		Lease: LeaseRules{
			Method:           LeaseMonthly,
			TaxCapReduction:  true,
			RebateBehavior:   LeaseRebateFollowRetailRule,
			DocFeeTaxability: LeaseDocFeeAlways,
			TradeInCredit:    LeaseTradeInCreditFull,
			SpecialScheme:    LeaseSchemeNone,
		},
		RebateRules: []RebateRule{{Scope: RebateManufacturer, Taxable: false}, {Scope: RebateDealer, Taxable: false}},
	}
	input := TaxCalculationInput{
		StateCode:    "IN",
		DealType:     DealLease,
		BasePayment:  decimal.NewFromInt(350),
		PaymentCount: 24,
		DocFee:       decimal.NewFromInt(150),
		Rates:        []RateEntry{{Label: "state", Rate: decimal.NewFromFloat(0.07)}},
	}

	result, err := CalculateLease(input, rules)
	require.Nil(t, err)

	expected := result.LeaseBreakdown.UpfrontTaxes.TotalTax.Add(
		result.LeaseBreakdown.PaymentTaxesPerPeriod.TotalTax.Mul(decimal.NewFromInt(24)),
	)
	assert.True(t, result.LeaseBreakdown.TotalTaxOverTerm.Equal(expected))
}

func TestCalculateLease_UnrecognisedMethodIsInternalInconsistency(t *testing.T) {
	rules := TaxRulesConfig{
		StateCode:   "ZZ",
		Lease:       LeaseRules{Method: "Bogus", DocFeeTaxability: LeaseDocFeeNever, RebateBehavior: LeaseRebateAlwaysNonTaxable, TradeInCredit: LeaseTradeInCreditFull},
		RebateRules: []RebateRule{{Scope: RebateManufacturer, Taxable: false}, {Scope: RebateDealer, Taxable: false}},
	}
	input := TaxCalculationInput{StateCode: "ZZ", DealType: DealLease, PaymentCount: 12}

	_, err := CalculateLease(input, rules)
	require.NotNil(t, err)
	assert.Equal(t, ErrInternalInconsistency, err.Code)
}
