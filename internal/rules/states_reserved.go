package rules

import "github.com/tesseract-nexus/vehicle-tax-engine/internal/engine"

// oklahoma and northDakota exercise the FullUpfront lease method for the
// non-Iowa case: trade-in is credited in full (unlike Iowa's inversion), so
// the §4.3.2 formula leaves it out of the total rather than adding it back.
func oklahoma() engine.TaxRulesConfig {
	return engine.TaxRulesConfig{
		StateCode:             "OK",
		Version:               1,
		TradeInPolicy:         engine.TradeInPolicy{Kind: engine.TradeInFull},
		RebateRules:           standardRebateRules(false, false),
		DocFeeTaxable:         true,
		TaxOnAccessories:      true,
		TaxOnServiceContracts: false,
		TaxOnGap:              false,
		VehicleTaxScheme:      engine.SchemeStateOnly,
		Lease: engine.LeaseRules{
			Method:           engine.LeaseFullUpfront,
			TaxCapReduction:  true,
			RebateBehavior:   engine.LeaseRebateFollowRetailRule,
			DocFeeTaxability: engine.LeaseDocFeeAlways,
			TradeInCredit:    engine.LeaseTradeInCreditFull,
			SpecialScheme:    engine.LeaseSchemeNone,
		},
		Extras: engine.RuleExtras{
			LeasePriceFormula: "FullUpfront is applied to every lease regardless of term; no 12-month threshold is modelled",
		},
	}
}

func northDakota() engine.TaxRulesConfig {
	return engine.TaxRulesConfig{
		StateCode:             "ND",
		Version:               1,
		TradeInPolicy:         engine.TradeInPolicy{Kind: engine.TradeInFull},
		RebateRules:           standardRebateRules(false, false),
		DocFeeTaxable:         false,
		TaxOnAccessories:      true,
		TaxOnServiceContracts: false,
		TaxOnGap:              false,
		VehicleTaxScheme:      engine.SchemeStateOnly,
		Lease: engine.LeaseRules{
			Method:           engine.LeaseFullUpfront,
			TaxCapReduction:  true,
			RebateBehavior:   engine.LeaseRebateFollowRetailRule,
			DocFeeTaxability: engine.LeaseDocFeeNever,
			TradeInCredit:    engine.LeaseTradeInCreditFull,
			SpecialScheme:    engine.LeaseSchemeNone,
		},
		Extras: engine.RuleExtras{
			LeasePriceFormula: "non-heavy vehicles only; heavy-vehicle leases are out of scope for this registry",
		},
	}
}

// newYork, newJersey, colorado, texas, maryland register five of the six
// reserved LeaseSpecialScheme tags (virginia carries the sixth, VaUsage). No state-specific formula is documented for them
// yet, so they fall back to the Monthly-equivalent behavior the engine
// already logs a debug note about.
func newYork() engine.TaxRulesConfig {
	cfg := genericRetailLeaseState("NY")
	cfg.Lease.SpecialScheme = engine.LeaseSchemeNyMtr
	cfg.Extras.Notes = "NY MTR (Metropolitan Transportation Region) surcharge reserved; no formula documented yet"
	return cfg
}

func newJersey() engine.TaxRulesConfig {
	cfg := genericRetailLeaseState("NJ")
	cfg.Lease.SpecialScheme = engine.LeaseSchemeNjLuxury
	cfg.Extras.Notes = "NJ luxury/fuel-inefficient surcharge reserved; no formula documented yet"
	return cfg
}

func colorado() engine.TaxRulesConfig {
	cfg := genericRetailLeaseState("CO")
	cfg.Lease.SpecialScheme = engine.LeaseSchemeCoHomeRuleLease
	cfg.Extras.Notes = "CO home-rule municipality lease tax reserved; local jurisdiction geocoding is out of scope"
	return cfg
}

func texas() engine.TaxRulesConfig {
	cfg := genericRetailLeaseState("TX")
	cfg.Lease.SpecialScheme = engine.LeaseSchemeTxLeaseSpecial
	cfg.Extras.Notes = "TX lease-specific gross receipts variant reserved; no formula documented yet"
	return cfg
}

func maryland() engine.TaxRulesConfig {
	cfg := genericRetailLeaseState("MD")
	cfg.Lease.SpecialScheme = engine.LeaseSchemeMdUpfrontGain
	cfg.Extras.Notes = "MD upfront-gain lease variant reserved; no formula documented yet"
	return cfg
}

func genericRetailLeaseState(code string) engine.TaxRulesConfig {
	return engine.TaxRulesConfig{
		StateCode:             code,
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
		},
	}
}

// california is a registered Stub: IsStateImplemented returns false and the
// Dispatcher answers NotImplementedForState, exercising that failure path
// without guessing at California's (unresearched, in this registry) rule
// data.
func california() engine.TaxRulesConfig {
	return engine.TaxRulesConfig{
		StateCode: "CA",
		Version:   0,
		Extras:    engine.RuleExtras{Status: "Stub"},
	}
}
