package rules

import "github.com/tesseract-nexus/vehicle-tax-engine/internal/engine"

// indiana is a plain StateOnly retail rule: full trade-in credit,
// manufacturer rebates non-taxable (subtracted from the base) and dealer
// rebates taxable (added back), doc fee uncapped and taxable,
// VSC/GAP/accessories all taxable.
func indiana() engine.TaxRulesConfig {
	return engine.TaxRulesConfig{
		StateCode:             "IN",
		Version:               1,
		TradeInPolicy:         engine.TradeInPolicy{Kind: engine.TradeInFull},
		RebateRules:           standardRebateRules(false, true),
		DocFeeTaxable:         true,
		TaxOnAccessories:      true,
		TaxOnServiceContracts: true,
		TaxOnGap:              true,
		VehicleTaxScheme:      engine.SchemeStateOnly,
		Lease: engine.LeaseRules{
			Method:           engine.LeaseMonthly,
			TaxCapReduction:  true,
			RebateBehavior:   engine.LeaseRebateFollowRetailRule,
			DocFeeTaxability: engine.LeaseDocFeeFollowRetailRule,
			TradeInCredit:    engine.LeaseTradeInCreditFull,
			SpecialScheme:    engine.LeaseSchemeNone,
		},
	}
}

// illinois registers the Chicago/Cook County lease-surcharge variant by
// default, since neither the registry nor the input has a sub-state
// jurisdiction key. Retail deals use the generic StatePlusLocal pipeline.
func illinois() engine.TaxRulesConfig {
	return engine.TaxRulesConfig{
		StateCode:                "IL",
		Version:                  1,
		TradeInPolicy:            engine.TradeInPolicy{Kind: engine.TradeInFull},
		RebateRules:              standardRebateRules(false, false),
		DocFeeTaxable:            true,
		DocFeeCap:                decimalPtr(money(300)),
		TaxOnAccessories:         true,
		TaxOnServiceContracts:    true,
		TaxOnGap:                 false,
		VehicleTaxScheme:         engine.SchemeStatePlusLocal,
		VehicleUsesLocalSalesTax: true,
		Lease: engine.LeaseRules{
			Method:           engine.LeaseMonthly,
			TaxCapReduction:  true,
			RebateBehavior:   engine.LeaseRebateFollowRetailRule,
			DocFeeTaxability: engine.LeaseDocFeeAlways,
			TradeInCredit:    engine.LeaseTradeInCreditFull,
			SpecialScheme:    engine.LeaseSchemeIlChicagoCook,
		},
		Extras: engine.RuleExtras{
			IlChicagoSurchargeRate: pct(0.08),
			Notes:                  "Chicago/Cook County personal-property lease use tax registered as the default IL lease profile",
		},
	}
}

// alabama exhibits the Partial trade-in credit (state-only, not local) and
// the Hybrid lease method (cap reductions taxed upfront, payments also
// taxed, trade-in taxed as part of the cap reduction).
func alabama() engine.TaxRulesConfig {
	return engine.TaxRulesConfig{
		StateCode: "AL",
		Version:   1,
		TradeInPolicy: engine.TradeInPolicy{
			Kind:          engine.TradeInPartial,
			StateEligible: true,
			LocalEligible: false,
		},
		RebateRules:              standardRebateRules(false, false),
		DocFeeTaxable:            true,
		TaxOnAccessories:         true,
		TaxOnServiceContracts:    true,
		TaxOnGap:                 true,
		VehicleTaxScheme:         engine.SchemeStatePlusLocal,
		VehicleUsesLocalSalesTax: true,
		Lease: engine.LeaseRules{
			Method:           engine.LeaseHybrid,
			TaxCapReduction:  true,
			RebateBehavior:   engine.LeaseRebateFollowRetailRule,
			DocFeeTaxability: engine.LeaseDocFeeFollowRetailRule,
			TradeInCredit:    engine.LeaseTradeInCreditNone,
			SpecialScheme:    engine.LeaseSchemeNone,
		},
	}
}

// iowa uses the FullUpfront-adjacent Monthly method with TradeInCredit=None
// (the documented trade-in "inversion": the trade-in is taxed as part of the
// cap reduction rather than credited) plus a flat $10 title fee folded into
// the upfront tax.
func iowa() engine.TaxRulesConfig {
	return engine.TaxRulesConfig{
		StateCode:             "IA",
		Version:               1,
		TradeInPolicy:         engine.TradeInPolicy{Kind: engine.TradeInFull},
		RebateRules:           standardRebateRules(false, false),
		DocFeeTaxable:         false,
		TaxOnAccessories:      true,
		TaxOnServiceContracts: false,
		TaxOnGap:              false,
		VehicleTaxScheme:      engine.SchemeStateOnly,
		Lease: engine.LeaseRules{
			Method:           engine.LeaseMonthly,
			TaxCapReduction:  true,
			RebateBehavior:   engine.LeaseRebateFollowRetailRule,
			DocFeeTaxability: engine.LeaseDocFeeNever,
			TradeInCredit:    engine.LeaseTradeInCreditNone,
			SpecialScheme:    engine.LeaseSchemeNone,
		},
		Extras: engine.RuleExtras{
			FlatFeeAmount:     money(10),
			FlatFeeLabel:      "iowa_title_fee",
			LeasePriceFormula: "trade-in taxed as part of the cap-cost reduction rather than credited against it; see tradeInCredit=None",
		},
	}
}

