package rules

import "github.com/tesseract-nexus/vehicle-tax-engine/internal/engine"

// georgia replaces sales tax with the Title Ad Valorem Tax on retail
// purchases; leases are taxed under the standard sales tax on payments
// (engine.CalculateTAVT delegates to CalculateLease for DealLease).
func georgia() engine.TaxRulesConfig {
	return engine.TaxRulesConfig{
		StateCode:             "GA",
		Version:               1,
		TradeInPolicy:         engine.TradeInPolicy{Kind: engine.TradeInFull},
		RebateRules:           standardRebateRules(false, false),
		DocFeeTaxable:         false,
		TaxOnAccessories:      true,
		TaxOnServiceContracts: false,
		TaxOnGap:              false,
		VehicleTaxScheme:      engine.SchemeSpecialTAVT,
		Lease: engine.LeaseRules{
			Method:           engine.LeaseMonthly,
			TaxCapReduction:  true,
			RebateBehavior:   engine.LeaseRebateFollowRetailRule,
			DocFeeTaxability: engine.LeaseDocFeeFollowRetailRule,
			TradeInCredit:    engine.LeaseTradeInCreditFull,
			SpecialScheme:    engine.LeaseSchemeNone,
		},
		Extras: engine.RuleExtras{
			TavtRate: pct(0.066),
			Notes:    "TAVT replaces both sales tax and annual ad valorem tax on title transfer",
		},
	}
}

// northCarolina replaces sales tax with the Highway Use Tax and grants a
// 90-day reciprocity window against tax already paid to another state.
func northCarolina() engine.TaxRulesConfig {
	ninety := days(90)
	return engine.TaxRulesConfig{
		StateCode:             "NC",
		Version:               1,
		TradeInPolicy:         engine.TradeInPolicy{Kind: engine.TradeInFull},
		RebateRules:           standardRebateRules(false, false),
		DocFeeTaxable:         true,
		TaxOnAccessories:      false,
		TaxOnServiceContracts: false,
		TaxOnGap:              false,
		VehicleTaxScheme:      engine.SchemeSpecialHUT,
		Lease: engine.LeaseRules{
			Method:           engine.LeaseMonthly,
			TaxCapReduction:  true,
			RebateBehavior:   engine.LeaseRebateFollowRetailRule,
			DocFeeTaxability: engine.LeaseDocFeeFollowRetailRule,
			TradeInCredit:    engine.LeaseTradeInCreditFull,
			SpecialScheme:    engine.LeaseSchemeNone,
		},
		Reciprocity: engine.ReciprocityRules{
			Enabled:            true,
			Scope:              engine.ReciprocityScopeRetail,
			Basis:              engine.BasisTaxPaid,
			CapAtThisStatesTax: true,
			Overrides: []engine.ReciprocityOverride{
				{OriginState: "*", TimeWindowDays: ninety},
			},
		},
		Extras: engine.RuleExtras{
			HutRate: pct(0.03),
			Notes:   "Highway Use Tax, not a sales tax; applies state-only",
		},
	}
}

// westVirginia's DMV Privilege Tax rate varies by vehicle class, and
// service contracts/GAP are taxable here unlike most other registered
// states.
func westVirginia() engine.TaxRulesConfig {
	return engine.TaxRulesConfig{
		StateCode:             "WV",
		Version:               1,
		TradeInPolicy:         engine.TradeInPolicy{Kind: engine.TradeInFull},
		RebateRules:           standardRebateRules(false, false),
		DocFeeTaxable:         true,
		TaxOnAccessories:      true,
		TaxOnServiceContracts: true,
		TaxOnGap:              true,
		VehicleTaxScheme:      engine.SchemeDmvPrivilegeTax,
		Lease: engine.LeaseRules{
			Method:           engine.LeaseMonthly,
			TaxCapReduction:  true,
			RebateBehavior:   engine.LeaseRebateFollowRetailRule,
			DocFeeTaxability: engine.LeaseDocFeeFollowRetailRule,
			TradeInCredit:    engine.LeaseTradeInCreditFull,
			SpecialScheme:    engine.LeaseSchemeNone,
		},
		Extras: engine.RuleExtras{
			PrivilegeBaseRate:    pct(0.05),
			PrivilegeRvRate:      pct(0.06),
			PrivilegeTrailerRate: pct(0.03),
			Notes:                "DMV Privilege Tax replaces sales tax for titled vehicles",
		},
	}
}

// pennsylvania layers a flat 3% motor-vehicle-lease tax on top of the
// standard monthly sales tax; retail purchases use the generic pipeline.
func pennsylvania() engine.TaxRulesConfig {
	return engine.TaxRulesConfig{
		StateCode:             "PA",
		Version:               1,
		TradeInPolicy:         engine.TradeInPolicy{Kind: engine.TradeInFull},
		RebateRules:           standardRebateRules(false, false),
		DocFeeTaxable:         true,
		TaxOnAccessories:      true,
		TaxOnServiceContracts: true,
		TaxOnGap:              false,
		VehicleTaxScheme:      engine.SchemeStateOnly,
		Lease: engine.LeaseRules{
			Method:           engine.LeaseMonthly,
			TaxCapReduction:  true,
			RebateBehavior:   engine.LeaseRebateFollowRetailRule,
			DocFeeTaxability: engine.LeaseDocFeeAlways,
			TradeInCredit:    engine.LeaseTradeInCreditFull,
			SpecialScheme:    engine.LeaseSchemePaLeaseTax,
		},
		Extras: engine.RuleExtras{
			PaLeaseSurchargeRate: pct(0.03),
		},
	}
}

// tennessee applies its single-article cap to both the retail rate
// application (step 6, via Extras.TnStateCapThreshold) and the lease
// per-period rate application (via LeaseSchemeTnSingleArticleCap).
func tennessee() engine.TaxRulesConfig {
	return engine.TaxRulesConfig{
		StateCode:                "TN",
		Version:                  1,
		TradeInPolicy:            engine.TradeInPolicy{Kind: engine.TradeInFull},
		RebateRules:              standardRebateRules(false, false),
		DocFeeTaxable:            true,
		TaxOnAccessories:         true,
		TaxOnServiceContracts:    true,
		TaxOnGap:                 false,
		VehicleTaxScheme:         engine.SchemeStatePlusLocal,
		VehicleUsesLocalSalesTax: true,
		Lease: engine.LeaseRules{
			Method:           engine.LeaseMonthly,
			TaxCapReduction:  true,
			RebateBehavior:   engine.LeaseRebateFollowRetailRule,
			DocFeeTaxability: engine.LeaseDocFeeFollowRetailRule,
			TradeInCredit:    engine.LeaseTradeInCreditFull,
			SpecialScheme:    engine.LeaseSchemeTnSingleArticleCap,
		},
		Extras: engine.RuleExtras{
			TnStateCapThreshold: money(3200),
			Notes:               "single-article cap limits only the state-labelled rate base; local is uncapped",
		},
	}
}
