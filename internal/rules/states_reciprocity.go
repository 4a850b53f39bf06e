package rules

import "github.com/tesseract-nexus/vehicle-tax-engine/internal/engine"

// virginia is registered chiefly as a reciprocity origin partner for North
// Carolina's HUT credit (§8 scenario 5); its own rule is an ordinary
// StateOnly retail/lease pipeline.
func virginia() engine.TaxRulesConfig {
	return engine.TaxRulesConfig{
		StateCode:             "VA",
		Version:               1,
		TradeInPolicy:         engine.TradeInPolicy{Kind: engine.TradeInFull},
		RebateRules:           standardRebateRules(false, false),
		DocFeeTaxable:         true,
		TaxOnAccessories:      true,
		TaxOnServiceContracts: false,
		TaxOnGap:              false,
		VehicleTaxScheme:      engine.SchemeStateOnly,
		Lease: engine.LeaseRules{
			Method:           engine.LeaseMonthly,
			TaxCapReduction:  true,
			RebateBehavior:   engine.LeaseRebateFollowRetailRule,
			DocFeeTaxability: engine.LeaseDocFeeFollowRetailRule,
			TradeInCredit:    engine.LeaseTradeInCreditFull,
			SpecialScheme:    engine.LeaseSchemeVaUsage,
		},
		Extras: engine.RuleExtras{
			Notes: "VaUsage (usage/personal-property-style lease assessment) reserved; no formula documented yet, behaves as Monthly",
		},
	}
}

// rhodeIsland and wyoming have reciprocity enabled with no per-origin
// overrides (DESIGN.md, Open Question 3): every origin state gets the plain TaxPaid
// credit capped at the destination tax, via the empty Overrides slice.
func rhodeIsland() engine.TaxRulesConfig {
	return engine.TaxRulesConfig{
		StateCode:             "RI",
		Version:               1,
		TradeInPolicy:         engine.TradeInPolicy{Kind: engine.TradeInFull},
		RebateRules:           standardRebateRules(false, false),
		DocFeeTaxable:         true,
		TaxOnAccessories:      true,
		TaxOnServiceContracts: false,
		TaxOnGap:              false,
		VehicleTaxScheme:      engine.SchemeStateOnly,
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
			Scope:              engine.ReciprocityScopeBoth,
			Basis:              engine.BasisTaxPaid,
			CapAtThisStatesTax: true,
		},
	}
}

func wyoming() engine.TaxRulesConfig {
	return engine.TaxRulesConfig{
		StateCode:             "WY",
		Version:               1,
		TradeInPolicy:         engine.TradeInPolicy{Kind: engine.TradeInFull},
		RebateRules:           standardRebateRules(false, false),
		DocFeeTaxable:         true,
		TaxOnAccessories:      true,
		TaxOnServiceContracts: false,
		TaxOnGap:              false,
		VehicleTaxScheme:      engine.SchemeStateOnly,
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
			Scope:              engine.ReciprocityScopeBoth,
			Basis:              engine.BasisTaxPaid,
			CapAtThisStatesTax: true,
		},
	}
}
