package engine

import "github.com/shopspring/decimal"

// AppliedTradeIn is the result of interpreting a TradeInPolicy against a
// gross base and an offered trade-in value.
type AppliedTradeIn struct {
	Amount        decimal.Decimal
	StateEligible bool
	LocalEligible bool
	Note          string
}

// InterpretTradeInPolicy is the sole reader of TradeInPolicyKind. Every
// pipeline that needs a trade-in credit calls this instead of switching on
// the kind directly, so a new variant requires a change in exactly one place.
func InterpretTradeInPolicy(policy TradeInPolicy, grossBase, tradeValue decimal.Decimal) (AppliedTradeIn, *TaxError) {
	switch policy.Kind {
	case TradeInNone:
		return AppliedTradeIn{
			Amount:        decimal.Zero,
			StateEligible: false,
			LocalEligible: false,
			Note:          "trade-in value not creditable under this state's policy",
		}, nil

	case TradeInFull:
		amt := clampZero(minDec(tradeValue, grossBase))
		return AppliedTradeIn{
			Amount:        amt,
			StateEligible: true,
			LocalEligible: true,
			Note:          "full trade-in credit applied",
		}, nil

	case TradeInCapped:
		if policy.Amount.IsNegative() {
			return AppliedTradeIn{}, internalInconsistency("tradeInPolicy.amount", "capped trade-in amount is negative")
		}
		amt := clampZero(minDec(minDec(tradeValue, policy.Amount), grossBase))
		return AppliedTradeIn{
			Amount:        amt,
			StateEligible: true,
			LocalEligible: true,
			Note:          "trade-in credit capped per state limit",
		}, nil

	case TradeInPercentage:
		if policy.Ratio.IsNegative() || policy.Ratio.GreaterThan(decimal.NewFromInt(1)) {
			return AppliedTradeIn{}, internalInconsistency("tradeInPolicy.ratio", "trade-in percentage ratio outside [0,1]")
		}
		amt := clampZero(minDec(tradeValue.Mul(policy.Ratio), grossBase))
		return AppliedTradeIn{
			Amount:        amt,
			StateEligible: true,
			LocalEligible: true,
			Note:          "percentage trade-in credit applied",
		}, nil

	case TradeInPartial:
		amt := clampZero(minDec(tradeValue, grossBase))
		return AppliedTradeIn{
			Amount:        amt,
			StateEligible: policy.StateEligible,
			LocalEligible: policy.LocalEligible,
			Note:          "partial trade-in credit: eligibility differs between state and local base",
		}, nil

	default:
		return AppliedTradeIn{}, internalInconsistency("tradeInPolicy.kind", "unrecognised trade-in policy variant: "+string(policy.Kind))
	}
}

// IsRebateTaxable answers whether a retail rebate of the given scope is
// taxable under the state's rule.
func IsRebateTaxable(rules TaxRulesConfig, scope RebateScope) (bool, string, *TaxError) {
	rule, ok := rules.RebateTaxable(scope)
	if !ok {
		return false, "", internalInconsistency("rebateRules", "no rebate rule configured for scope "+string(scope))
	}
	return rule.Taxable, rule.Notes, nil
}

// IsDocFeeTaxable answers whether the retail doc fee is taxable, and whether
// the configured cap (if any) is itself valid.
func IsDocFeeTaxable(rules TaxRulesConfig) (bool, *TaxError) {
	if rules.DocFeeCap != nil && rules.DocFeeCap.IsNegative() {
		return false, internalInconsistency("docFeeCap", "doc fee cap is negative")
	}
	return rules.DocFeeTaxable, nil
}

// IsFeeTaxable answers whether a named ad hoc fee is taxable for the given
// deal type. Lease fee rules fall back to the retail table when a lease
// override is not present, per §3's "may differ from retail" design.
func IsFeeTaxable(rules TaxRulesConfig, feeCode string, dealType DealType) (bool, string) {
	if dealType == DealLease {
		if rule, ok := rules.Lease.FeeTaxRules[feeCode]; ok {
			return rule.Taxable, rule.Notes
		}
	}
	if rule, ok := rules.FeeTaxRules[feeCode]; ok {
		return rule.Taxable, rule.Notes
	}
	return false, "fee code not configured for this state; treated as non-taxable"
}

// InterpretVehicleTaxScheme returns the scheme the dispatcher should route on.
func InterpretVehicleTaxScheme(rules TaxRulesConfig) VehicleTaxScheme {
	return rules.VehicleTaxScheme
}

// LeaseDocFeeTaxability resolves whether the lease doc fee is taxed, and
// confirms it is charged upfront rather than amortised across payments — the
// generic lease pipeline never spreads the doc fee over the term.
func LeaseDocFeeTaxability(rules TaxRulesConfig, method LeaseMethod) (taxableUpfront bool, note string, err *TaxError) {
	switch rules.Lease.DocFeeTaxability {
	case LeaseDocFeeAlways:
		return true, "lease doc fee always taxable, charged upfront", nil
	case LeaseDocFeeNever:
		return false, "lease doc fee never taxable under this state's rule", nil
	case LeaseDocFeeOnlyUpfront:
		return true, "lease doc fee taxable only as an upfront item", nil
	case LeaseDocFeeFollowRetailRule:
		taxable, rerr := IsDocFeeTaxable(rules)
		if rerr != nil {
			return false, "", rerr
		}
		return taxable, "lease doc fee taxability follows the retail rule", nil
	default:
		return false, "", internalInconsistency("lease.docFeeTaxability", "unrecognised lease doc fee taxability variant: "+string(rules.Lease.DocFeeTaxability))
	}
}

// resolveLeaseRebateTaxable applies LeaseRebateBehavior, falling back to the
// retail IsRebateTaxable rule for FollowRetailRule. atSigning is true for the
// up-front cap-cost-reduction rebates this engine models (it never defers a
// rebate past signing).
func resolveLeaseRebateTaxable(rules TaxRulesConfig, scope RebateScope, atSigning bool) (bool, string, *TaxError) {
	switch rules.Lease.RebateBehavior {
	case LeaseRebateAlwaysTaxable:
		return true, "lease rebate always taxable per state override", nil
	case LeaseRebateAlwaysNonTaxable:
		return false, "lease rebate never taxable per state override", nil
	case LeaseRebateNonTaxableIfAtSigning:
		if atSigning {
			return false, "lease rebate applied at signing is non-taxable", nil
		}
		return true, "lease rebate not applied at signing; taxable", nil
	case LeaseRebateFollowRetailRule:
		taxable, note, err := IsRebateTaxable(rules, scope)
		if err != nil {
			return false, "", err
		}
		return taxable, note, nil
	default:
		return false, "", internalInconsistency("lease.rebateBehavior", "unrecognised lease rebate behavior variant: "+string(rules.Lease.RebateBehavior))
	}
}
