package engine

// CalculateTAVT implements Georgia's Title Ad Valorem Tax (§4.5). It replaces
// sales tax for a retail deal; for a lease, Georgia applies the standard
// sales tax on payments instead, so the calculator delegates to the generic
// lease pipeline.
func CalculateTAVT(input TaxCalculationInput, rules TaxRulesConfig) (TaxCalculationResult, *TaxError) {
	if input.DealType == DealLease {
		return CalculateLease(input, rules)
	}

	stateBase, _, result, err := computeRetailBase(input, rules)
	if err != nil {
		return TaxCalculationResult{}, err
	}

	amount := roundMoney(stateBase.Mul(rules.Extras.TavtRate))
	result.Taxes.Add(TaxLine{Label: "tavt", TaxableBase: stateBase, Rate: rules.Extras.TavtRate, Amount: amount})
	result.Bases.StateTaxableBase = stateBase
	result.Bases.LocalTaxableBase = stateBase
	result.Bases.TotalTaxableBase = stateBase
	result.Debug.Note("Georgia TAVT replaces sales tax and annual ad valorem tax")

	return result, nil
}

// CalculateHUT implements North Carolina's Highway Use Tax (§4.5). It is a
// state-only replacement for sales tax on a retail purchase. Its 90-day
// reciprocity window is expressed as an ordinary ReciprocityOverride in the
// rule data (see internal/rules), so the Dispatcher's uniform
// ApplyReciprocity step handles it without any HUT-specific code here.
func CalculateHUT(input TaxCalculationInput, rules TaxRulesConfig) (TaxCalculationResult, *TaxError) {
	if input.DealType == DealLease {
		return CalculateLease(input, rules)
	}

	stateBase, _, result, err := computeRetailBase(input, rules)
	if err != nil {
		return TaxCalculationResult{}, err
	}

	amount := roundMoney(stateBase.Mul(rules.Extras.HutRate))
	result.Taxes.Add(TaxLine{Label: "hut", TaxableBase: stateBase, Rate: rules.Extras.HutRate, Amount: amount})
	result.Bases.StateTaxableBase = stateBase
	result.Bases.LocalTaxableBase = stateBase
	result.Bases.TotalTaxableBase = stateBase
	result.Debug.Note("North Carolina Highway Use Tax applies state-only instead of sales tax")

	return result, nil
}

// CalculatePrivilegeTax implements West Virginia's DMV Privilege Tax (§4.5).
// The base rate is modified by vehicle class, and unlike most states, VSC and
// GAP are taxable here when the rule flags say so.
func CalculatePrivilegeTax(input TaxCalculationInput, rules TaxRulesConfig) (TaxCalculationResult, *TaxError) {
	if input.DealType == DealLease {
		return CalculateLease(input, rules)
	}

	stateBase, _, result, err := computeRetailBase(input, rules)
	if err != nil {
		return TaxCalculationResult{}, err
	}

	rate := rules.Extras.PrivilegeBaseRate
	switch input.VehicleClass {
	case "RV":
		rate = rules.Extras.PrivilegeRvRate
	case "Trailer":
		rate = rules.Extras.PrivilegeTrailerRate
	}

	amount := roundMoney(stateBase.Mul(rate))
	result.Taxes.Add(TaxLine{Label: "privilege_tax", TaxableBase: stateBase, Rate: rate, Amount: amount})
	result.Bases.StateTaxableBase = stateBase
	result.Bases.LocalTaxableBase = stateBase
	result.Bases.TotalTaxableBase = stateBase
	result.Debug.Note("West Virginia DMV Privilege Tax rate selected by vehicle class")

	return result, nil
}
