package engine

import "github.com/shopspring/decimal"

// Dispatcher implements §4.7: validate input, look up state rules, check
// implementation status, route to the correct calculator by scheme and deal
// type, then apply reciprocity uniformly to whatever the calculator returned.
type Dispatcher struct {
	registry Registry
}

// NewDispatcher wraps a Registry for use by the HTTP service layer.
func NewDispatcher(registry Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// CalculateTax is the single entry point described in §6: a pure function of
// its arguments (input plus whatever the dispatcher's registry holds), with
// no I/O performed here beyond the in-memory map lookups.
func (d *Dispatcher) CalculateTax(input TaxCalculationInput) (TaxCalculationResult, *TaxError) {
	if verr := ValidateInput(input); verr != nil {
		return TaxCalculationResult{}, verr
	}

	rules, ok := d.registry.GetRulesForState(input.StateCode)
	if !ok {
		return TaxCalculationResult{}, &TaxError{Code: ErrUnknownState, Field: "stateCode", Reason: "no rule record registered for state " + input.StateCode}
	}
	if rules.Extras.Status == "Stub" {
		return TaxCalculationResult{}, &TaxError{Code: ErrNotImplementedForState, Field: "stateCode", Reason: "state " + input.StateCode + " is registered but not yet implemented"}
	}
	if rerr := validateRuleExtras(rules); rerr != nil {
		return TaxCalculationResult{}, rerr
	}

	var (
		result TaxCalculationResult
		terr   *TaxError
	)

	switch rules.VehicleTaxScheme {
	case SchemeSpecialTAVT:
		result, terr = CalculateTAVT(input, rules)
	case SchemeSpecialHUT:
		result, terr = CalculateHUT(input, rules)
	case SchemeDmvPrivilegeTax:
		result, terr = CalculatePrivilegeTax(input, rules)
	case SchemeStateOnly, SchemeStatePlusLocal:
		switch input.DealType {
		case DealRetail:
			result, terr = CalculateRetail(input, rules)
		case DealLease:
			result, terr = CalculateLease(input, rules)
		default:
			return TaxCalculationResult{}, invalidInput("dealType", "unrecognised deal type: "+string(input.DealType))
		}
	default:
		return TaxCalculationResult{}, internalInconsistency("vehicleTaxScheme", "unrecognised vehicle tax scheme: "+string(rules.VehicleTaxScheme))
	}
	if terr != nil {
		return TaxCalculationResult{}, terr
	}

	d.applyReciprocity(&result, input, rules)

	return result, nil
}

// reciprocityCreditLabel marks the synthetic TaxLine that reconciles
// ByLabel with TotalTax after a reciprocity credit is applied.
const reciprocityCreditLabel = "reciprocity_credit"

// applyReciprocity runs ResolveReciprocity once, uniformly, against whatever
// pipeline produced result, and folds the credit back into the right total.
// The credit is also recorded as a negative TaxLine so sum(ByLabel[*].Amount)
// keeps equaling TotalTax (§3/§8 invariant 1) even after the reduction.
func (d *Dispatcher) applyReciprocity(result *TaxCalculationResult, input TaxCalculationInput, rules TaxRulesConfig) {
	if input.Origin == nil {
		return
	}

	if result.LeaseBreakdown != nil {
		credit, notes := ResolveReciprocity(rules, input, result.LeaseBreakdown.UpfrontTaxes.TotalTax, result.Bases.TotalTaxableBase, d.registry)
		result.Debug.ReciprocityApplied = credit
		for _, n := range notes {
			result.Debug.Note(n)
		}
		if credit.IsZero() {
			return
		}
		before := result.LeaseBreakdown.UpfrontTaxes.TotalTax
		after := clampZero(before.Sub(credit))
		applied := before.Sub(after)
		result.LeaseBreakdown.UpfrontTaxes.TotalTax = after
		result.LeaseBreakdown.UpfrontTaxes.ByLabel = append(result.LeaseBreakdown.UpfrontTaxes.ByLabel, TaxLine{
			Label:       reciprocityCreditLabel,
			TaxableBase: result.Bases.TotalTaxableBase,
			Rate:        decimal.Zero,
			Amount:      applied.Neg(),
		})
		result.LeaseBreakdown.TotalTaxOverTerm = clampZero(result.LeaseBreakdown.TotalTaxOverTerm.Sub(applied))
		result.Taxes.TotalTax = result.LeaseBreakdown.TotalTaxOverTerm
		return
	}

	credit, notes := ResolveReciprocity(rules, input, result.Taxes.TotalTax, result.Bases.TotalTaxableBase, d.registry)
	result.Debug.ReciprocityApplied = credit
	for _, n := range notes {
		result.Debug.Note(n)
	}
	if credit.IsZero() {
		return
	}
	before := result.Taxes.TotalTax
	after := clampZero(before.Sub(credit))
	applied := before.Sub(after)
	result.Taxes.TotalTax = after
	result.Taxes.ByLabel = append(result.Taxes.ByLabel, TaxLine{
		Label:       reciprocityCreditLabel,
		TaxableBase: result.Bases.TotalTaxableBase,
		Rate:        decimal.Zero,
		Amount:      applied.Neg(),
	})
}
