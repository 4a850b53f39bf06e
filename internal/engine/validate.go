package engine

// ValidateInput checks structural validity of a TaxCalculationInput,
// independent of any rule record. It is the first step the Dispatcher runs.
func ValidateInput(input TaxCalculationInput) *TaxError {
	if len(input.StateCode) != 2 {
		return invalidInput("stateCode", "state code must be a 2-letter postal abbreviation")
	}
	if input.DealType != DealRetail && input.DealType != DealLease {
		return invalidInput("dealType", "deal type must be Retail or Lease")
	}

	if input.VehiclePrice.IsNegative() {
		return invalidInput("vehiclePrice", "must not be negative")
	}
	if input.AccessoriesAmount.IsNegative() {
		return invalidInput("accessoriesAmount", "must not be negative")
	}
	if input.TradeInValue.IsNegative() {
		return invalidInput("tradeInValue", "must not be negative")
	}
	if input.RebateManufacturer.IsNegative() {
		return invalidInput("rebateManufacturer", "must not be negative")
	}
	if input.RebateDealer.IsNegative() {
		return invalidInput("rebateDealer", "must not be negative")
	}
	if input.DocFee.IsNegative() {
		return invalidInput("docFee", "must not be negative")
	}
	if input.ServiceContracts.IsNegative() {
		return invalidInput("serviceContracts", "must not be negative")
	}
	if input.Gap.IsNegative() {
		return invalidInput("gap", "must not be negative")
	}
	if input.NegativeEquity.IsNegative() {
		return invalidInput("negativeEquity", "must not be negative")
	}
	for _, f := range input.OtherFees {
		if f.Amount.IsNegative() {
			return invalidInput("otherFees["+f.Code+"]", "fee amount must not be negative")
		}
	}
	for _, r := range input.Rates {
		if r.Rate.IsNegative() {
			return invalidInput("rates["+r.Label+"]", "rate must not be negative")
		}
	}

	if input.DealType == DealLease {
		if input.PaymentCount <= 0 {
			return invalidInput("paymentCount", "must be positive for a lease deal")
		}
		if input.BasePayment.IsNegative() {
			return invalidInput("basePayment", "must not be negative")
		}
		if input.GrossCapCost.IsNegative() {
			return invalidInput("grossCapCost", "must not be negative")
		}
		if input.CapReductionCash.IsNegative() {
			return invalidInput("capReductionCash", "must not be negative")
		}
		if input.CapReductionTradeIn.IsNegative() {
			return invalidInput("capReductionTradeIn", "must not be negative")
		}
		if input.CapReductionRebateManufacturer.IsNegative() {
			return invalidInput("capReductionRebateManufacturer", "must not be negative")
		}
		if input.CapReductionRebateDealer.IsNegative() {
			return invalidInput("capReductionRebateDealer", "must not be negative")
		}
	}

	if input.Origin != nil {
		if len(input.Origin.OriginState) != 2 {
			return invalidInput("origin.originState", "origin state code must be a 2-letter postal abbreviation")
		}
		if input.Origin.TaxPaid.IsNegative() {
			return invalidInput("origin.taxPaid", "must not be negative")
		}
		if input.Origin.RatePaid.IsNegative() {
			return invalidInput("origin.ratePaid", "must not be negative")
		}
	}

	return nil
}

// validateRuleExtras catches the documented classes of internally
// inconsistent rule data before a pipeline reads them.
func validateRuleExtras(rules TaxRulesConfig) *TaxError {
	if rules.DocFeeCap != nil && rules.DocFeeCap.IsNegative() {
		return internalInconsistency("docFeeCap", "doc fee cap is negative")
	}
	switch rules.VehicleTaxScheme {
	case SchemeSpecialTAVT:
		if rules.Extras.TavtRate.IsNegative() {
			return internalInconsistency("extras.tavtRate", "TAVT rate is negative")
		}
	case SchemeSpecialHUT:
		if rules.Extras.HutRate.IsNegative() {
			return internalInconsistency("extras.hutRate", "HUT rate is negative")
		}
	case SchemeDmvPrivilegeTax:
		if rules.Extras.PrivilegeBaseRate.IsNegative() {
			return internalInconsistency("extras.privilegeBaseRate", "privilege tax base rate is negative")
		}
	}
	return nil
}
