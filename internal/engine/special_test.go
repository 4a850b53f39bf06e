package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTAVT_Georgia(t *testing.T) {
	rules := TaxRulesConfig{
		StateCode:        "GA",
		TradeInPolicy:    TradeInPolicy{Kind: TradeInFull},
		VehicleTaxScheme: SchemeSpecialTAVT,
		Extras:           RuleExtras{TavtRate: decimal.NewFromFloat(0.066)},
	}
	input := TaxCalculationInput{
		StateCode:    "GA",
		DealType:     DealRetail,
		VehiclePrice: decimal.NewFromInt(30000),
	}

	result, err := CalculateTAVT(input, rules)
	require.Nil(t, err)
	assert.True(t, result.Taxes.TotalTax.Equal(decimal.NewFromFloat(1980.00)), "tavt: got %s", result.Taxes.TotalTax)
}

func TestCalculateTAVT_LeaseDelegatesToCalculateLease(t *testing.T) {
	rules := TaxRulesConfig{
		StateCode:        "GA",
		VehicleTaxScheme: SchemeSpecialTAVT,
		RebateRules:      []RebateRule{{Scope: RebateManufacturer, Taxable: false}, {Scope: RebateDealer, Taxable: false}},
		Lease: LeaseRules{
			Method:           LeaseMonthly,
			DocFeeTaxability: LeaseDocFeeNever,
			RebateBehavior:   LeaseRebateAlwaysNonTaxable,
			TradeInCredit:    LeaseTradeInCreditFull,
			SpecialScheme:    LeaseSchemeNone,
		},
	}
	input := TaxCalculationInput{
		StateCode:    "GA",
		DealType:     DealLease,
		BasePayment:  decimal.NewFromInt(300),
		PaymentCount: 36,
		Rates:        []RateEntry{{Label: "state", Rate: decimal.NewFromFloat(0.04)}},
	}

	result, err := CalculateTAVT(input, rules)
	require.Nil(t, err)
	require.NotNil(t, result.LeaseBreakdown)
}

func TestCalculateHUT_NorthCarolina(t *testing.T) {
	rules := TaxRulesConfig{
		StateCode:        "NC",
		TradeInPolicy:    TradeInPolicy{Kind: TradeInFull},
		VehicleTaxScheme: SchemeSpecialHUT,
		Extras:           RuleExtras{HutRate: decimal.NewFromFloat(0.03)},
	}
	input := TaxCalculationInput{
		StateCode:    "NC",
		DealType:     DealRetail,
		VehiclePrice: decimal.NewFromInt(30000),
	}

	result, err := CalculateHUT(input, rules)
	require.Nil(t, err)
	assert.True(t, result.Taxes.TotalTax.Equal(decimal.NewFromInt(900)), "hut: got %s", result.Taxes.TotalTax)
}

func TestCalculatePrivilegeTax_WestVirginiaByVehicleClass(t *testing.T) {
	rules := TaxRulesConfig{
		StateCode:        "WV",
		TradeInPolicy:    TradeInPolicy{Kind: TradeInFull},
		VehicleTaxScheme: SchemeDmvPrivilegeTax,
		Extras: RuleExtras{
			PrivilegeBaseRate:    decimal.NewFromFloat(0.05),
			PrivilegeRvRate:      decimal.NewFromFloat(0.06),
			PrivilegeTrailerRate: decimal.NewFromFloat(0.03),
		},
	}

	carInput := TaxCalculationInput{StateCode: "WV", DealType: DealRetail, VehiclePrice: decimal.NewFromInt(10000)}
	carResult, err := CalculatePrivilegeTax(carInput, rules)
	require.Nil(t, err)
	assert.True(t, carResult.Taxes.TotalTax.Equal(decimal.NewFromInt(500)))

	rvInput := carInput
	rvInput.VehicleClass = "RV"
	rvResult, err := CalculatePrivilegeTax(rvInput, rules)
	require.Nil(t, err)
	assert.True(t, rvResult.Taxes.TotalTax.Equal(decimal.NewFromInt(600)))
}
