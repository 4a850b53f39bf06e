package engine

import "github.com/shopspring/decimal"

// ResolveReciprocity implements §4.6: given the destination rule, the
// incoming OriginTaxInfo, the tax otherwise due at the destination, and the
// registry (for the mutual-credit-required check and the state-pair matrix
// fallback), returns the credit to subtract from the destination tax plus the
// audit notes explaining the decision.
//
// taxableBaseForRateRecompute is the destination-side base used only when
// the rule's Basis is RatePaid (the credit recomputes what the origin state
// would have charged on this same consideration).
func ResolveReciprocity(
	destRules TaxRulesConfig,
	input TaxCalculationInput,
	destinationTaxDue decimal.Decimal,
	taxableBaseForRateRecompute decimal.Decimal,
	registry Registry,
) (decimal.Decimal, []string) {
	var notes []string

	if input.Origin == nil {
		return decimal.Zero, notes
	}

	if !destRules.Reciprocity.Enabled {
		notes = append(notes, "reciprocity not enabled for "+destRules.StateCode)
		return decimal.Zero, notes
	}

	scopeMatches := destRules.Reciprocity.Scope == ReciprocityScopeBoth ||
		(destRules.Reciprocity.Scope == ReciprocityScopeRetail && input.DealType == DealRetail) ||
		(destRules.Reciprocity.Scope == ReciprocityScopeLease && input.DealType == DealLease)
	if !scopeMatches {
		notes = append(notes, "reciprocity scope does not cover this deal type")
		return decimal.Zero, notes
	}

	override, found := destRules.Reciprocity.FindOverride(input.Origin.OriginState)
	if !found {
		if registry != nil {
			if o, ok := registry.Matrix().Lookup(destRules.StateCode, input.Origin.OriginState); ok {
				override = o
				found = true
			}
		}
	}

	if found && override.DisallowCredit {
		notes = append(notes, "reciprocity credit disallowed by override for origin "+input.Origin.OriginState)
		return decimal.Zero, notes
	}

	if found && override.TimeWindowDays != nil {
		elapsedDays := int(input.AsOfDate.Sub(input.Origin.PaidAt).Hours() / 24)
		if elapsedDays > *override.TimeWindowDays {
			notes = append(notes, "reciprocity time window exceeded: paid at origin more than the allowed window before asOfDate")
			return decimal.Zero, notes
		}
	}

	if found && override.MutualCreditRequired {
		originRules, ok := registry.GetRulesForState(input.Origin.OriginState)
		if !ok || !originRules.Reciprocity.Enabled {
			notes = append(notes, "mutual credit required but origin state does not reciprocate")
			return decimal.Zero, notes
		}
		originScopeMatches := originRules.Reciprocity.Scope == ReciprocityScopeBoth ||
			(originRules.Reciprocity.Scope == ReciprocityScopeRetail && input.DealType == DealRetail) ||
			(originRules.Reciprocity.Scope == ReciprocityScopeLease && input.DealType == DealLease)
		if !originScopeMatches {
			notes = append(notes, "mutual credit required but origin state's reciprocity scope does not cover this deal type")
			return decimal.Zero, notes
		}
	}

	var credit decimal.Decimal
	switch destRules.Reciprocity.Basis {
	case BasisRatePaid:
		credit = taxableBaseForRateRecompute.Mul(input.Origin.RatePaid)
	default: // BasisTaxPaid, and the zero value
		credit = input.Origin.TaxPaid
	}
	credit = roundMoney(clampZero(credit))

	if destRules.Reciprocity.CapAtThisStatesTax {
		if credit.GreaterThan(destinationTaxDue) {
			notes = append(notes, "reciprocity credit capped at destination tax otherwise due")
			credit = destinationTaxDue
		}
	}

	notes = append(notes, "reciprocity credit of "+credit.StringFixed(2)+" applied from origin "+input.Origin.OriginState)
	return clampZero(credit), notes
}
