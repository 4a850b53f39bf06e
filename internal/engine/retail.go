package engine

import "github.com/shopspring/decimal"

// CalculateRetail implements §4.2. It is called directly by the dispatcher
// for VehicleTaxScheme StateOnly/StatePlusLocal with DealType Retail. Its
// base computation (computeRetailBase) is shared with the special-scheme
// calculators (GA/NC/WV), which compute the common gross/trade-in/rebate/fee
// base the same way before they apply their own rate.
func CalculateRetail(input TaxCalculationInput, rules TaxRulesConfig) (TaxCalculationResult, *TaxError) {
	stateBase, localBase, result, err := computeRetailBase(input, rules)
	if err != nil {
		return TaxCalculationResult{}, err
	}

	// Step 6: rate application, per-line banker's rounding. A positive
	// Extras.TnStateCapThreshold (Tennessee's single-article cap) limits only
	// the state-labelled base; the local portion is never capped.
	for _, rate := range input.Rates {
		base := stateBase
		if rate.Label == "local" {
			base = localBase
		} else if rate.Label == "state" && rules.Extras.TnStateCapThreshold.IsPositive() {
			base = minDec(base, rules.Extras.TnStateCapThreshold)
		}
		amount := roundMoney(base.Mul(rate.Rate))
		result.Taxes.Add(TaxLine{Label: rate.Label, TaxableBase: base, Rate: rate.Rate, Amount: amount})
	}

	result.Bases.StateTaxableBase = stateBase
	result.Bases.LocalTaxableBase = localBase
	if localBase.GreaterThan(stateBase) {
		result.Bases.TotalTaxableBase = localBase
	} else {
		result.Bases.TotalTaxableBase = stateBase
	}

	return result, nil
}

// computeRetailBase runs §4.2 steps 1-5 (gross base through fees/products),
// shared by the generic retail pipeline and the special-scheme calculators
// that replace only the rate-application step.
func computeRetailBase(input TaxCalculationInput, rules TaxRulesConfig) (stateBase, localBase decimal.Decimal, result TaxCalculationResult, err *TaxError) {
	// Step 1: gross base.
	grossBase := input.VehiclePrice
	if rules.TaxOnAccessories {
		grossBase = grossBase.Add(input.AccessoriesAmount)
	} else if input.AccessoriesAmount.IsPositive() {
		result.Bases.ExemptComponents = append(result.Bases.ExemptComponents, ExemptComponent{
			Label: "accessories", Amount: input.AccessoriesAmount, Reason: "accessories not taxable under this state's rule",
		})
	}

	// Step 2: trade-in.
	tradeIn, terr := InterpretTradeInPolicy(rules.TradeInPolicy, grossBase, input.TradeInValue)
	if terr != nil {
		return decimal.Zero, decimal.Zero, TaxCalculationResult{}, terr
	}
	result.Debug.AppliedTradeIn = tradeIn.Amount
	result.Debug.Note(tradeIn.Note)

	stateBase = grossBase
	localBase = grossBase
	if tradeIn.StateEligible {
		stateBase = clampZero(stateBase.Sub(tradeIn.Amount))
	}
	if tradeIn.LocalEligible {
		localBase = clampZero(localBase.Sub(tradeIn.Amount))
	}
	if stateBase.IsZero() && tradeIn.Amount.IsPositive() && input.TradeInValue.GreaterThan(grossBase) {
		result.Debug.Note("taxable base clamped to zero: trade-in exceeded gross base")
	}

	// Step 3: rebates. A non-taxable rebate reduces the base (the incentive
	// is not part of the taxed consideration); a taxable rebate is added
	// back, because vehiclePrice is the price as negotiated net of rebates
	// and a taxable rebate must be restored into the base the state taxes.
	stateBase, localBase = applyRebate(rules, RebateManufacturer, input.RebateManufacturer, stateBase, localBase, &result)
	stateBase, localBase = applyRebate(rules, RebateDealer, input.RebateDealer, stateBase, localBase, &result)

	// Step 4: doc fee.
	docTaxable, derr := IsDocFeeTaxable(rules)
	if derr != nil {
		return decimal.Zero, decimal.Zero, TaxCalculationResult{}, derr
	}
	if docTaxable {
		taxableDoc := input.DocFee
		if rules.DocFeeCap != nil && taxableDoc.GreaterThan(*rules.DocFeeCap) {
			excess := taxableDoc.Sub(*rules.DocFeeCap)
			taxableDoc = *rules.DocFeeCap
			result.Bases.ExemptComponents = append(result.Bases.ExemptComponents, ExemptComponent{
				Label: "docFee", Amount: excess, Reason: "doc fee above state cap",
			})
		}
		result.Debug.TaxableDocFee = taxableDoc
		stateBase = stateBase.Add(taxableDoc)
		localBase = localBase.Add(taxableDoc)
	} else if input.DocFee.IsPositive() {
		result.Bases.ExemptComponents = append(result.Bases.ExemptComponents, ExemptComponent{
			Label: "docFee", Amount: input.DocFee, Reason: "doc fee not taxable under this state's rule",
		})
	}

	// Step 5: fees and products.
	for _, fee := range input.OtherFees {
		taxable, note := IsFeeTaxable(rules, fee.Code, DealRetail)
		if taxable {
			stateBase = stateBase.Add(fee.Amount)
			localBase = localBase.Add(fee.Amount)
			result.Debug.TaxableFees = append(result.Debug.TaxableFees, fee.Code)
		} else {
			result.Bases.ExemptComponents = append(result.Bases.ExemptComponents, ExemptComponent{Label: fee.Code, Amount: fee.Amount, Reason: note})
		}
	}
	stateBase, localBase = applyProduct(rules.TaxOnServiceContracts, "serviceContracts", input.ServiceContracts, stateBase, localBase, &result)
	stateBase, localBase = applyProduct(rules.TaxOnGap, "gap", input.Gap, stateBase, localBase, &result)
	stateBase, localBase = applyProduct(rules.TaxOnNegativeEquity, "negativeEquity", input.NegativeEquity, stateBase, localBase, &result)

	return stateBase, localBase, result, nil
}

// applyRebate mutates the running bases per the retail rebate rule and
// records the decision in the result's debug trail.
func applyRebate(rules TaxRulesConfig, scope RebateScope, amount decimal.Decimal, stateBase, localBase decimal.Decimal, result *TaxCalculationResult) (decimal.Decimal, decimal.Decimal) {
	if amount.IsZero() {
		return stateBase, localBase
	}
	taxable, _, err := IsRebateTaxable(rules, scope)
	if err != nil {
		result.Debug.Note("rebate scope " + string(scope) + " has no configured rule; treated as non-taxable")
		taxable = false
	}
	if taxable {
		result.Debug.AppliedRebatesTaxable = append(result.Debug.AppliedRebatesTaxable, string(scope))
		return stateBase.Add(amount), localBase.Add(amount)
	}
	result.Debug.AppliedRebatesNonTaxable = append(result.Debug.AppliedRebatesNonTaxable, string(scope))
	return clampZero(stateBase.Sub(amount)), clampZero(localBase.Sub(amount))
}

// applyProduct adds a product's amount to both bases when taxable, otherwise
// records it as an exempt component.
func applyProduct(taxable bool, label string, amount decimal.Decimal, stateBase, localBase decimal.Decimal, result *TaxCalculationResult) (decimal.Decimal, decimal.Decimal) {
	if amount.IsZero() {
		return stateBase, localBase
	}
	if taxable {
		result.Debug.TaxableFees = append(result.Debug.TaxableFees, label)
		return stateBase.Add(amount), localBase.Add(amount)
	}
	result.Bases.ExemptComponents = append(result.Bases.ExemptComponents, ExemptComponent{Label: label, Amount: amount, Reason: label + " not taxable under this state's rule"})
	return stateBase, localBase
}
