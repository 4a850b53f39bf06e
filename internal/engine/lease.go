package engine

import "github.com/shopspring/decimal"

// CalculateLease implements §4.3 and the state machine in §4.4:
//
//	Start → ComputeCapReductionTaxable → ComputeMonthlyTaxable
//	      → (if specialScheme) ApplySchemeAdjustment
//	      → ApplyRateRows → Emit
//
// Reciprocity (§4.6) is applied by the Dispatcher after this function
// returns, uniformly for every pipeline.
func CalculateLease(input TaxCalculationInput, rules TaxRulesConfig) (TaxCalculationResult, *TaxError) {
	result := TaxCalculationResult{}
	lease := &LeaseBreakdown{Terms: input.PaymentCount}

	docTaxableUpfront, docNote, derr := LeaseDocFeeTaxability(rules, rules.Lease.Method)
	if derr != nil {
		return TaxCalculationResult{}, derr
	}
	result.Debug.Note(docNote)

	taxableDocFee := decimal.Zero
	if docTaxableUpfront {
		taxableDocFee = input.DocFee
		if rules.DocFeeCap != nil && taxableDocFee.GreaterThan(*rules.DocFeeCap) {
			taxableDocFee = *rules.DocFeeCap
		}
		result.Debug.TaxableDocFee = taxableDocFee
	}

	// ComputeCapReductionTaxable (§4.3.1).
	upfrontBase := decimal.Zero
	if rules.Lease.TaxCapReduction {
		upfrontBase = upfrontBase.Add(input.CapReductionCash)

		mfgTaxable, mfgNote, err := resolveLeaseRebateTaxable(rules, RebateManufacturer, true)
		if err != nil {
			return TaxCalculationResult{}, err
		}
		if mfgTaxable && input.CapReductionRebateManufacturer.IsPositive() {
			upfrontBase = upfrontBase.Add(input.CapReductionRebateManufacturer)
			result.Debug.AppliedRebatesTaxable = append(result.Debug.AppliedRebatesTaxable, "Manufacturer")
		} else if input.CapReductionRebateManufacturer.IsPositive() {
			result.Debug.AppliedRebatesNonTaxable = append(result.Debug.AppliedRebatesNonTaxable, "Manufacturer")
		}
		result.Debug.Note(mfgNote)

		dealerTaxable, dealerNote, err := resolveLeaseRebateTaxable(rules, RebateDealer, true)
		if err != nil {
			return TaxCalculationResult{}, err
		}
		if dealerTaxable && input.CapReductionRebateDealer.IsPositive() {
			upfrontBase = upfrontBase.Add(input.CapReductionRebateDealer)
			result.Debug.AppliedRebatesTaxable = append(result.Debug.AppliedRebatesTaxable, "Dealer")
		} else if input.CapReductionRebateDealer.IsPositive() {
			result.Debug.AppliedRebatesNonTaxable = append(result.Debug.AppliedRebatesNonTaxable, "Dealer")
		}
		result.Debug.Note(dealerNote)

		switch rules.Lease.TradeInCredit {
		case LeaseTradeInCreditFull:
			result.Debug.Note("lease trade-in fully credited against cap cost; not separately taxed upfront")
		case LeaseTradeInCreditNone:
			upfrontBase = upfrontBase.Add(input.CapReductionTradeIn)
			result.Debug.Note("lease trade-in taxed as part of the cap-cost reduction (no credit against tax)")
		case LeaseTradeInCreditCapCostOnly:
			result.Debug.Note("lease trade-in lowers the capitalized cost but is not itself taxed")
		case LeaseTradeInCreditFollowRetailRule:
			result.Debug.Note("lease trade-in follows the retail trade-in rule; not separately taxed upfront")
		default:
			return TaxCalculationResult{}, internalInconsistency("lease.tradeInCredit", "unrecognised lease trade-in credit mode: "+string(rules.Lease.TradeInCredit))
		}

		if rules.Lease.NegativeEquityTaxable && input.NegativeEquity.IsPositive() {
			upfrontBase = upfrontBase.Add(input.NegativeEquity)
			result.Debug.TaxableFees = append(result.Debug.TaxableFees, "negativeEquity")
		}
	} else {
		result.Debug.Note("cap-cost reduction components not taxed upfront per state rule")
	}

	if docTaxableUpfront {
		upfrontBase = upfrontBase.Add(taxableDocFee)
	}

	if rules.Lease.TaxFeesUpfront {
		for _, fee := range input.OtherFees {
			taxable, note := IsFeeTaxable(rules, fee.Code, DealLease)
			if taxable {
				upfrontBase = upfrontBase.Add(fee.Amount)
				result.Debug.TaxableFees = append(result.Debug.TaxableFees, fee.Code)
			} else {
				result.Bases.ExemptComponents = append(result.Bases.ExemptComponents, ExemptComponent{Label: fee.Code, Amount: fee.Amount, Reason: note})
			}
		}
	}

	// ComputeMonthlyTaxable.
	perPeriodBase := input.BasePayment
	extraFlatFee := decimal.Zero
	extraFlatFeeLabel := ""

	switch rules.Lease.Method {
	case LeaseMonthly, LeaseHybrid, LeaseNetCapCost, LeaseReducedBase:
		// perPeriodBase already set; upfrontBase already computed above.
	case LeaseFullUpfront:
		// §4.3.2: total consideration formula replaces the generic
		// cap-reduction computation.
		total := input.BasePayment.Mul(decimal.NewFromInt(int64(input.PaymentCount)))
		total = total.Add(input.CapReductionCash).
			Add(input.CapReductionRebateManufacturer).
			Add(input.CapReductionRebateDealer)
		if rules.Lease.TradeInCredit != LeaseTradeInCreditFull {
			total = total.Add(input.CapReductionTradeIn)
			result.Debug.Note("FullUpfront total includes trade-in: tradeInCredit is not Full for this state")
		}
		if docTaxableUpfront {
			total = total.Add(taxableDocFee)
		}
		for _, fee := range input.OtherFees {
			if taxable, _ := IsFeeTaxable(rules, fee.Code, DealLease); taxable {
				total = total.Add(fee.Amount)
				if !rules.Lease.TaxFeesUpfront {
					result.Debug.TaxableFees = append(result.Debug.TaxableFees, fee.Code)
				}
			}
		}
		upfrontBase = total
		perPeriodBase = decimal.Zero
	default:
		return TaxCalculationResult{}, internalInconsistency("lease.method", "unrecognised lease method: "+string(rules.Lease.Method))
	}

	// A flat documentation/registration fee (e.g. Iowa's $10 title fee) is
	// folded into the upfront tax total regardless of lease method.
	if rules.Extras.FlatFeeAmount.IsPositive() {
		extraFlatFee = rules.Extras.FlatFeeAmount
		extraFlatFeeLabel = rules.Extras.FlatFeeLabel
		if extraFlatFeeLabel == "" {
			extraFlatFeeLabel = "flat_fee"
		}
	}

	// ApplySchemeAdjustment (§4.3.3) — additional per-period surcharge lines.
	var schemeLines []TaxLine
	switch rules.Lease.SpecialScheme {
	case LeaseSchemeNone:
		// no-op
	case LeaseSchemePaLeaseTax:
		amt := roundMoney(perPeriodBase.Mul(rules.Extras.PaLeaseSurchargeRate))
		schemeLines = append(schemeLines, TaxLine{Label: "pa_lease_surcharge", TaxableBase: perPeriodBase, Rate: rules.Extras.PaLeaseSurchargeRate, Amount: amt})
	case LeaseSchemeIlChicagoCook:
		amt := roundMoney(perPeriodBase.Mul(rules.Extras.IlChicagoSurchargeRate))
		schemeLines = append(schemeLines, TaxLine{Label: "il_chicago_lease_use_tax", TaxableBase: perPeriodBase, Rate: rules.Extras.IlChicagoSurchargeRate, Amount: amt})
	case LeaseSchemeTnSingleArticleCap:
		// handled inline during rate application below (state portion capped).
	case LeaseSchemeNyMtr, LeaseSchemeNjLuxury, LeaseSchemeCoHomeRuleLease, LeaseSchemeTxLeaseSpecial, LeaseSchemeVaUsage, LeaseSchemeMdUpfrontGain:
		result.Debug.Note("special lease scheme " + string(rules.Lease.SpecialScheme) + " recognised but behaves as the Monthly base method; no scheme-specific formula is yet specified for it")
	default:
		return TaxCalculationResult{}, internalInconsistency("lease.specialScheme", "unrecognised lease special scheme: "+string(rules.Lease.SpecialScheme))
	}

	// ApplyRateRows.
	for _, rate := range input.Rates {
		base := upfrontBase
		amount := roundMoney(base.Mul(rate.Rate))
		lease.UpfrontTaxes.Add(TaxLine{Label: rate.Label, TaxableBase: base, Rate: rate.Rate, Amount: amount})
	}
	if extraFlatFee.IsPositive() {
		lease.UpfrontTaxes.Add(TaxLine{Label: extraFlatFeeLabel, TaxableBase: decimal.Zero, Rate: decimal.Zero, Amount: roundMoney(extraFlatFee)})
	}

	for _, rate := range input.Rates {
		base := perPeriodBase
		if rules.Lease.SpecialScheme == LeaseSchemeTnSingleArticleCap && rate.Label == "state" {
			base = minDec(perPeriodBase, rules.Extras.TnStateCapThreshold)
		}
		amount := roundMoney(base.Mul(rate.Rate))
		lease.PaymentTaxesPerPeriod.Add(TaxLine{Label: rate.Label, TaxableBase: base, Rate: rate.Rate, Amount: amount})
	}
	for _, line := range schemeLines {
		lease.PaymentTaxesPerPeriod.Add(line)
	}

	lease.TotalTaxOverTerm = lease.UpfrontTaxes.TotalTax.Add(
		lease.PaymentTaxesPerPeriod.TotalTax.Mul(decimal.NewFromInt(int64(input.PaymentCount))),
	)

	result.LeaseBreakdown = lease
	result.Bases.TotalTaxableBase = clampZero(upfrontBase.Add(perPeriodBase.Mul(decimal.NewFromInt(int64(input.PaymentCount)))))
	result.Bases.StateTaxableBase = result.Bases.TotalTaxableBase
	result.Bases.LocalTaxableBase = result.Bases.TotalTaxableBase
	result.Taxes.TotalTax = lease.TotalTaxOverTerm

	return result, nil
}
