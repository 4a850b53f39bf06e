package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tesseract-nexus/vehicle-tax-engine/internal/engine"
)

// OriginTaxInfoRequest mirrors engine.OriginTaxInfo for JSON binding.
type OriginTaxInfoRequest struct {
	OriginState string          `json:"originState" binding:"required,len=2"`
	TaxPaid     decimal.Decimal `json:"taxPaid"`
	RatePaid    decimal.Decimal `json:"ratePaid"`
	PaidAt      time.Time       `json:"paidAt"`
}

// RateEntryRequest mirrors engine.RateEntry for JSON binding.
type RateEntryRequest struct {
	Label string          `json:"label" binding:"required"`
	Rate  decimal.Decimal `json:"rate" binding:"required"`
}

// OtherFeeRequest mirrors engine.OtherFee for JSON binding.
type OtherFeeRequest struct {
	Code   string          `json:"code" binding:"required"`
	Amount decimal.Decimal `json:"amount"`
}

// CalculateTaxRequest is the HTTP request body for POST /api/v1/tax/calculate.
type CalculateTaxRequest struct {
	StateCode string    `json:"stateCode" binding:"required,len=2"`
	AsOfDate  time.Time `json:"asOfDate"`
	DealType  string    `json:"dealType" binding:"required,oneof=Retail Lease"`

	VehiclePrice       decimal.Decimal    `json:"vehiclePrice"`
	AccessoriesAmount  decimal.Decimal    `json:"accessoriesAmount"`
	TradeInValue       decimal.Decimal    `json:"tradeInValue"`
	RebateManufacturer decimal.Decimal    `json:"rebateManufacturer"`
	RebateDealer       decimal.Decimal    `json:"rebateDealer"`
	DocFee             decimal.Decimal    `json:"docFee"`
	OtherFees          []OtherFeeRequest  `json:"otherFees"`
	ServiceContracts   decimal.Decimal    `json:"serviceContracts"`
	Gap                decimal.Decimal    `json:"gap"`
	NegativeEquity     decimal.Decimal    `json:"negativeEquity"`
	Rates              []RateEntryRequest `json:"rates" binding:"required,min=1,dive"`

	GrossCapCost                   decimal.Decimal `json:"grossCapCost"`
	CapReductionCash               decimal.Decimal `json:"capReductionCash"`
	CapReductionTradeIn            decimal.Decimal `json:"capReductionTradeIn"`
	CapReductionRebateManufacturer decimal.Decimal `json:"capReductionRebateManufacturer"`
	CapReductionRebateDealer       decimal.Decimal `json:"capReductionRebateDealer"`
	BasePayment                    decimal.Decimal `json:"basePayment"`
	PaymentCount                   int              `json:"paymentCount"`

	Origin *OriginTaxInfoRequest `json:"origin"`

	VehicleClass          string          `json:"vehicleClass"`
	GVW                   decimal.Decimal `json:"gvw"`
	CustomerIsNewResident bool            `json:"customerIsNewResident"`
}

// ToEngineInput converts the wire request into the engine's pure input type.
func (r CalculateTaxRequest) ToEngineInput() engine.TaxCalculationInput {
	rates := make([]engine.RateEntry, 0, len(r.Rates))
	for _, rate := range r.Rates {
		rates = append(rates, engine.RateEntry{Label: rate.Label, Rate: rate.Rate})
	}

	fees := make([]engine.OtherFee, 0, len(r.OtherFees))
	for _, fee := range r.OtherFees {
		fees = append(fees, engine.OtherFee{Code: fee.Code, Amount: fee.Amount})
	}

	var origin *engine.OriginTaxInfo
	if r.Origin != nil {
		origin = &engine.OriginTaxInfo{
			OriginState: r.Origin.OriginState,
			TaxPaid:     r.Origin.TaxPaid,
			RatePaid:    r.Origin.RatePaid,
			PaidAt:      r.Origin.PaidAt,
		}
	}

	asOf := r.AsOfDate
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	return engine.TaxCalculationInput{
		StateCode:                      r.StateCode,
		AsOfDate:                       asOf,
		DealType:                       engine.DealType(r.DealType),
		VehiclePrice:                   r.VehiclePrice,
		AccessoriesAmount:              r.AccessoriesAmount,
		TradeInValue:                   r.TradeInValue,
		RebateManufacturer:             r.RebateManufacturer,
		RebateDealer:                   r.RebateDealer,
		DocFee:                         r.DocFee,
		OtherFees:                      fees,
		ServiceContracts:               r.ServiceContracts,
		Gap:                            r.Gap,
		NegativeEquity:                 r.NegativeEquity,
		Rates:                          rates,
		GrossCapCost:                   r.GrossCapCost,
		CapReductionCash:               r.CapReductionCash,
		CapReductionTradeIn:            r.CapReductionTradeIn,
		CapReductionRebateManufacturer: r.CapReductionRebateManufacturer,
		CapReductionRebateDealer:       r.CapReductionRebateDealer,
		BasePayment:                    r.BasePayment,
		PaymentCount:                   r.PaymentCount,
		Origin:                         origin,
		VehicleClass:                   r.VehicleClass,
		GVW:                            r.GVW,
		CustomerIsNewResident:          r.CustomerIsNewResident,
	}
}
