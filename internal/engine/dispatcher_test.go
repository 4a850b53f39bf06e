package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() *MapRegistry {
	registry := NewRegistry()
	registry.Register(TaxRulesConfig{
		StateCode:             "IN",
		TradeInPolicy:         TradeInPolicy{Kind: TradeInFull},
		RebateRules:           []RebateRule{{Scope: RebateManufacturer, Taxable: false}, {Scope: RebateDealer, Taxable: true}},
		DocFeeTaxable:         true,
		TaxOnAccessories:      true,
		TaxOnServiceContracts: true,
		TaxOnGap:              true,
		VehicleTaxScheme:      SchemeStateOnly,
		Lease: LeaseRules{
			Method:           LeaseMonthly,
			DocFeeTaxability: LeaseDocFeeFollowRetailRule,
			RebateBehavior:   LeaseRebateFollowRetailRule,
			TradeInCredit:    LeaseTradeInCreditFull,
			SpecialScheme:    LeaseSchemeNone,
		},
	})
	registry.Register(TaxRulesConfig{
		StateCode: "CA",
		Extras:    RuleExtras{Status: "Stub"},
	})
	ninety := 90
	registry.Register(TaxRulesConfig{
		StateCode:        "NC",
		TradeInPolicy:    TradeInPolicy{Kind: TradeInFull},
		VehicleTaxScheme: SchemeSpecialHUT,
		Extras:           RuleExtras{HutRate: decimal.NewFromFloat(0.03)},
		Reciprocity: ReciprocityRules{
			Enabled:            true,
			Scope:              ReciprocityScopeRetail,
			Basis:              BasisTaxPaid,
			CapAtThisStatesTax: true,
			Overrides:          []ReciprocityOverride{{OriginState: "*", TimeWindowDays: &ninety}},
		},
	})
	return registry
}

func TestDispatcher_UnknownState(t *testing.T) {
	d := NewDispatcher(newTestRegistry())
	_, err := d.CalculateTax(TaxCalculationInput{StateCode: "ZZ", DealType: DealRetail, VehiclePrice: decimal.NewFromInt(1000)})
	require.NotNil(t, err)
	assert.Equal(t, ErrUnknownState, err.Code)
}

func TestDispatcher_StubStateNotImplemented(t *testing.T) {
	d := NewDispatcher(newTestRegistry())
	_, err := d.CalculateTax(TaxCalculationInput{StateCode: "CA", DealType: DealRetail, VehiclePrice: decimal.NewFromInt(1000)})
	require.NotNil(t, err)
	assert.Equal(t, ErrNotImplementedForState, err.Code)
}

func TestDispatcher_InvalidInputRejectedBeforeRegistryLookup(t *testing.T) {
	d := NewDispatcher(newTestRegistry())
	_, err := d.CalculateTax(TaxCalculationInput{StateCode: "ZZZ", DealType: DealRetail})
	require.NotNil(t, err)
	assert.Equal(t, ErrInvalidInput, err.Code)
}

func TestDispatcher_RoutesRetailToIndiana(t *testing.T) {
	d := NewDispatcher(newTestRegistry())
	result, err := d.CalculateTax(TaxCalculationInput{
		StateCode:          "IN",
		DealType:           DealRetail,
		VehiclePrice:       decimal.NewFromInt(35000),
		AccessoriesAmount:  decimal.NewFromInt(2000),
		TradeInValue:       decimal.NewFromInt(10000),
		RebateManufacturer: decimal.NewFromInt(2000),
		RebateDealer:       decimal.NewFromInt(500),
		DocFee:             decimal.NewFromInt(200),
		ServiceContracts:   decimal.NewFromInt(2500),
		Gap:                decimal.NewFromInt(800),
		Rates:              []RateEntry{{Label: "state", Rate: decimal.NewFromFloat(0.07)}},
	})
	require.Nil(t, err)
	assert.True(t, result.Taxes.TotalTax.Equal(decimal.NewFromFloat(2030.00)))
}

func TestDispatcher_AppliesReciprocityForHUT(t *testing.T) {
	d := NewDispatcher(newTestRegistry())
	asOf := time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC)
	result, err := d.CalculateTax(TaxCalculationInput{
		StateCode:    "NC",
		AsOfDate:     asOf,
		DealType:     DealRetail,
		VehiclePrice: decimal.NewFromInt(30000),
		Origin: &OriginTaxInfo{
			OriginState: "VA",
			TaxPaid:     decimal.NewFromInt(1245),
			PaidAt:      asOf.AddDate(0, 0, -30),
		},
	})
	require.Nil(t, err)
	assert.True(t, result.Taxes.TotalTax.IsZero(), "net tax after reciprocity: got %s", result.Taxes.TotalTax)

	sum := decimal.Zero
	for _, line := range result.Taxes.ByLabel {
		sum = sum.Add(line.Amount)
	}
	assert.True(t, sum.Equal(result.Taxes.TotalTax), "sum(byLabel) must equal totalTax: got %s, want %s", sum, result.Taxes.TotalTax)
}

func TestDispatcher_Determinism(t *testing.T) {
	d := NewDispatcher(newTestRegistry())
	input := TaxCalculationInput{
		StateCode:    "IN",
		DealType:     DealRetail,
		VehiclePrice: decimal.NewFromInt(20000),
		Rates:        []RateEntry{{Label: "state", Rate: decimal.NewFromFloat(0.07)}},
	}
	first, err1 := d.CalculateTax(input)
	second, err2 := d.CalculateTax(input)
	require.Nil(t, err1)
	require.Nil(t, err2)
	assert.Equal(t, first, second)
}
