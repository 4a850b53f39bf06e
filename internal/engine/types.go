// Package engine implements the pure vehicle sales/use-tax calculation core:
// the rule DSL, the retail and lease pipelines, the special-scheme calculators,
// and the reciprocity resolver. Nothing in this package performs I/O, reads the
// clock, or retains state between calls — every exported function is a total,
// deterministic function of its arguments.
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// DealType distinguishes a retail purchase from a lease.
type DealType string

const (
	DealRetail DealType = "Retail"
	DealLease  DealType = "Lease"
)

// VehicleTaxScheme selects which pipeline computes the tax for a state.
type VehicleTaxScheme string

const (
	SchemeStateOnly       VehicleTaxScheme = "StateOnly"
	SchemeStatePlusLocal  VehicleTaxScheme = "StatePlusLocal"
	SchemeSpecialTAVT     VehicleTaxScheme = "SpecialTAVT"
	SchemeSpecialHUT      VehicleTaxScheme = "SpecialHUT"
	SchemeDmvPrivilegeTax VehicleTaxScheme = "DmvPrivilegeTax"
)

// TradeInPolicyKind tags the variants of TradeInPolicy.
type TradeInPolicyKind string

const (
	TradeInFull       TradeInPolicyKind = "Full"
	TradeInNone       TradeInPolicyKind = "None"
	TradeInCapped     TradeInPolicyKind = "Capped"
	TradeInPercentage TradeInPolicyKind = "Percentage"
	// TradeInPartial is a SPEC_FULL addition: Alabama's trade-in credit is
	// state-eligible but not local-eligible. See DESIGN.md Open Question 1.
	TradeInPartial TradeInPolicyKind = "Partial"
)

// TradeInPolicy is a tagged variant; only the fields relevant to Kind are read.
type TradeInPolicy struct {
	Kind          TradeInPolicyKind
	Amount        decimal.Decimal // Capped
	Ratio         decimal.Decimal // Percentage, in [0,1]
	StateEligible bool            // Partial
	LocalEligible bool            // Partial
}

// RebateScope identifies who funds a rebate.
type RebateScope string

const (
	RebateManufacturer RebateScope = "Manufacturer"
	RebateDealer       RebateScope = "Dealer"
)

// LeaseMethod selects the lease tax computation strategy.
type LeaseMethod string

const (
	LeaseMonthly     LeaseMethod = "Monthly"
	LeaseFullUpfront LeaseMethod = "FullUpfront"
	LeaseHybrid      LeaseMethod = "Hybrid"
	LeaseNetCapCost  LeaseMethod = "NetCapCost"
	LeaseReducedBase LeaseMethod = "ReducedBase"
)

// LeaseTradeInCreditMode controls how a lease's trade-in contributes to the
// upfront taxable base.
type LeaseTradeInCreditMode string

const (
	LeaseTradeInCreditFull            LeaseTradeInCreditMode = "Full"
	LeaseTradeInCreditNone            LeaseTradeInCreditMode = "None"
	LeaseTradeInCreditCapCostOnly     LeaseTradeInCreditMode = "CapCostOnly"
	LeaseTradeInCreditFollowRetailRule LeaseTradeInCreditMode = "FollowRetailRule"
)

// LeaseRebateBehavior overrides the retail rebate-taxability rule for leases.
type LeaseRebateBehavior string

const (
	LeaseRebateFollowRetailRule     LeaseRebateBehavior = "FollowRetailRule"
	LeaseRebateAlwaysTaxable        LeaseRebateBehavior = "AlwaysTaxable"
	LeaseRebateAlwaysNonTaxable     LeaseRebateBehavior = "AlwaysNonTaxable"
	LeaseRebateNonTaxableIfAtSigning LeaseRebateBehavior = "NonTaxableIfAtSigning"
)

// LeaseDocFeeTaxability governs whether and when a lease's doc fee is taxed.
type LeaseDocFeeTaxability string

const (
	LeaseDocFeeAlways           LeaseDocFeeTaxability = "Always"
	LeaseDocFeeNever            LeaseDocFeeTaxability = "Never"
	LeaseDocFeeFollowRetailRule LeaseDocFeeTaxability = "FollowRetailRule"
	LeaseDocFeeOnlyUpfront      LeaseDocFeeTaxability = "OnlyUpfront"
)

// LeaseSpecialScheme selects a per-period surcharge or cap calculator layered
// on top of the generic lease pipeline. The TAVT/HUT/DmvPrivilegeTax
// calculators are selected by VehicleTaxScheme, not by this tag.
type LeaseSpecialScheme string

const (
	LeaseSchemeNone               LeaseSpecialScheme = "None"
	LeaseSchemePaLeaseTax         LeaseSpecialScheme = "PaLeaseTax"
	LeaseSchemeIlChicagoCook      LeaseSpecialScheme = "IlChicagoCook"
	LeaseSchemeTnSingleArticleCap LeaseSpecialScheme = "TnSingleArticleCap"
	LeaseSchemeNyMtr              LeaseSpecialScheme = "NyMtr"
	LeaseSchemeNjLuxury           LeaseSpecialScheme = "NjLuxury"
	LeaseSchemeCoHomeRuleLease    LeaseSpecialScheme = "CoHomeRuleLease"
	LeaseSchemeTxLeaseSpecial     LeaseSpecialScheme = "TxLeaseSpecial"
	LeaseSchemeVaUsage            LeaseSpecialScheme = "VaUsage"
	LeaseSchemeMdUpfrontGain      LeaseSpecialScheme = "MdUpfrontGain"
)

// ReciprocityScope identifies which deal types a reciprocity rule covers.
type ReciprocityScope string

const (
	ReciprocityScopeNone   ReciprocityScope = "None"
	ReciprocityScopeRetail ReciprocityScope = "Retail"
	ReciprocityScopeLease  ReciprocityScope = "Lease"
	ReciprocityScopeBoth   ReciprocityScope = "Both"
)

// ReciprocityHomeBehavior documents (informationally) how this state treats
// reciprocity when it is itself the origin state for another state's credit.
type ReciprocityHomeBehavior string

const (
	HomeBehaviorNone                 ReciprocityHomeBehavior = "None"
	HomeBehaviorCreditUpToStateRate  ReciprocityHomeBehavior = "CreditUpToStateRate"
	HomeBehaviorNoCredit             ReciprocityHomeBehavior = "NoCredit"
	HomeBehaviorFullCreditNoCap      ReciprocityHomeBehavior = "FullCreditNoCap"
)

// ReciprocityBasis selects how a credit amount is computed.
type ReciprocityBasis string

const (
	BasisTaxPaid  ReciprocityBasis = "TaxPaid"
	BasisRatePaid ReciprocityBasis = "RatePaid"
)

// wildcardOrigin matches any origin state not otherwise listed in Overrides.
const wildcardOrigin = "*"

// FeeTaxRule answers whether a given fee code is taxable, with a rationale.
type FeeTaxRule struct {
	Taxable bool
	Notes   string
}

// RebateRule records whether a rebate scope is taxable under retail rules.
type RebateRule struct {
	Scope   RebateScope
	Taxable bool
	Notes   string
}

// ReciprocityOverride is a per-origin-state policy carve-out. OriginState may
// be wildcardOrigin ("*") to apply to any origin not otherwise listed.
type ReciprocityOverride struct {
	OriginState             string
	DisallowCredit          bool
	TimeWindowDays          *int
	MutualCreditRequired    bool
	VehicleClassRestriction []string
}

// ReciprocityRules is the destination state's policy for crediting tax paid
// to an origin state on the same vehicle.
type ReciprocityRules struct {
	Enabled               bool
	Scope                 ReciprocityScope
	HomeStateBehavior     ReciprocityHomeBehavior
	RequireProofOfTaxPaid bool
	Basis                 ReciprocityBasis
	CapAtThisStatesTax    bool
	HasLeaseException     bool
	Overrides             []ReciprocityOverride
}

// FindOverride resolves the override applicable to originState, preferring an
// exact match over the wildcard entry.
func (r ReciprocityRules) FindOverride(originState string) (ReciprocityOverride, bool) {
	var wildcard ReciprocityOverride
	haveWildcard := false
	for _, o := range r.Overrides {
		if o.OriginState == originState {
			return o, true
		}
		if o.OriginState == wildcardOrigin {
			wildcard = o
			haveWildcard = true
		}
	}
	return wildcard, haveWildcard
}

// RuleExtras carries numeric rates, caps, and documentation metadata used
// only by special-scheme calculators and a handful of generic-pipeline
// state-specific constants (e.g. Iowa's flat registration fee).
type RuleExtras struct {
	// Status, when "Stub", marks a state as not yet researched; the
	// dispatcher refuses to compute for it rather than guessing.
	Status string

	TavtRate             decimal.Decimal // Georgia
	HutRate              decimal.Decimal // North Carolina
	PrivilegeBaseRate    decimal.Decimal // West Virginia
	PrivilegeRvRate      decimal.Decimal
	PrivilegeTrailerRate decimal.Decimal

	PaLeaseSurchargeRate    decimal.Decimal // Pennsylvania, 3%
	IlChicagoSurchargeRate  decimal.Decimal // Illinois/Cook, 8%
	TnStateCapThreshold     decimal.Decimal // Tennessee single-article cap base

	// FlatFeeAmount is a documentation-driven flat fee folded into the
	// upfront lease tax total (Iowa's $10 registration fee).
	FlatFeeAmount decimal.Decimal
	FlatFeeLabel  string

	// LeasePriceFormula documents a deviation from the generic FullUpfront
	// formula, such as Iowa's trade-in inversion. Informational only.
	LeasePriceFormula string

	Notes string
}

// RateEntry is a pre-composed jurisdictional rate supplied by the caller.
// Label is conventionally "state" or "local"; the retail pipeline applies
// every label other than "local" to the state taxable base.
type RateEntry struct {
	Label string
	Rate  decimal.Decimal
}

// OtherFee is a named, ad hoc fee line on the deal.
type OtherFee struct {
	Code   string
	Amount decimal.Decimal
}

// LeaseRules is the lease-specific portion of a state's rule record.
type LeaseRules struct {
	Method                LeaseMethod
	TaxCapReduction        bool
	RebateBehavior         LeaseRebateBehavior
	DocFeeTaxability       LeaseDocFeeTaxability
	TradeInCredit          LeaseTradeInCreditMode
	NegativeEquityTaxable  bool
	FeeTaxRules            map[string]FeeTaxRule
	TitleFeeRules          map[string]FeeTaxRule
	TaxFeesUpfront         bool
	SpecialScheme          LeaseSpecialScheme
}

// TaxRulesConfig is the per-state rule record: the DSL's root entity.
type TaxRulesConfig struct {
	StateCode                string
	Version                  int
	TradeInPolicy            TradeInPolicy
	RebateRules              []RebateRule
	DocFeeTaxable            bool
	DocFeeCap                *decimal.Decimal
	FeeTaxRules              map[string]FeeTaxRule
	TaxOnAccessories         bool
	TaxOnNegativeEquity      bool
	TaxOnServiceContracts    bool
	TaxOnGap                 bool
	VehicleTaxScheme         VehicleTaxScheme
	VehicleUsesLocalSalesTax bool
	Lease                    LeaseRules
	Reciprocity              ReciprocityRules
	Extras                   RuleExtras
}

// RebateTaxable looks up the configured taxability for a rebate scope.
func (c TaxRulesConfig) RebateTaxable(scope RebateScope) (RebateRule, bool) {
	for _, r := range c.RebateRules {
		if r.Scope == scope {
			return r, true
		}
	}
	return RebateRule{}, false
}

// OriginTaxInfo describes tax already paid to another state on this vehicle,
// supplied by the caller to trigger reciprocity.
type OriginTaxInfo struct {
	OriginState string
	TaxPaid     decimal.Decimal
	RatePaid    decimal.Decimal
	PaidAt      time.Time
}

// TaxCalculationInput is the engine's sole input record.
type TaxCalculationInput struct {
	StateCode string
	AsOfDate  time.Time
	DealType  DealType

	VehiclePrice        decimal.Decimal
	AccessoriesAmount   decimal.Decimal
	TradeInValue        decimal.Decimal
	RebateManufacturer  decimal.Decimal
	RebateDealer        decimal.Decimal
	DocFee              decimal.Decimal
	OtherFees           []OtherFee
	ServiceContracts    decimal.Decimal
	Gap                 decimal.Decimal
	NegativeEquity      decimal.Decimal
	TaxAlreadyCollected decimal.Decimal
	Rates               []RateEntry

	// Lease-only fields.
	GrossCapCost                   decimal.Decimal
	CapReductionCash                decimal.Decimal
	CapReductionTradeIn              decimal.Decimal
	CapReductionRebateManufacturer   decimal.Decimal
	CapReductionRebateDealer         decimal.Decimal
	BasePayment                     decimal.Decimal
	PaymentCount                    int

	Origin *OriginTaxInfo

	VehicleClass          string
	GVW                   decimal.Decimal
	CustomerIsNewResident bool
}

// ExemptComponent records a dollar amount excluded from the taxable base,
// with the reason it was excluded.
type ExemptComponent struct {
	Label  string
	Amount decimal.Decimal
	Reason string
}

// Bases is the taxable-base portion of a result.
type Bases struct {
	TotalTaxableBase decimal.Decimal
	StateTaxableBase decimal.Decimal
	LocalTaxableBase decimal.Decimal
	ExemptComponents []ExemptComponent
}

// TaxLine is a single applied tax: one rate against one base.
type TaxLine struct {
	Label       string
	TaxableBase decimal.Decimal
	Rate        decimal.Decimal
	Amount      decimal.Decimal
}

// Taxes aggregates a set of TaxLines.
type Taxes struct {
	TotalTax decimal.Decimal
	ByLabel  []TaxLine
}

// Add appends a line and accumulates TotalTax. Rounding must already have
// been applied to line.Amount by the caller (per-line, never sum-then-round).
func (t *Taxes) Add(line TaxLine) {
	t.ByLabel = append(t.ByLabel, line)
	t.TotalTax = t.TotalTax.Add(line.Amount)
}

// LeaseBreakdown is present only on lease-deal results.
type LeaseBreakdown struct {
	UpfrontTaxes          Taxes
	PaymentTaxesPerPeriod Taxes
	TotalTaxOverTerm      decimal.Decimal
	Terms                 int
}

// Debug is the audit trail: every interpreter decision worth surfacing.
type Debug struct {
	AppliedTradeIn           decimal.Decimal
	AppliedRebatesTaxable    []string
	AppliedRebatesNonTaxable []string
	TaxableDocFee            decimal.Decimal
	TaxableFees              []string
	ReciprocityApplied       decimal.Decimal
	Notes                    []string
}

// Note appends a textual explanation to the audit trail.
func (d *Debug) Note(note string) {
	d.Notes = append(d.Notes, note)
}

// TaxCalculationResult is the engine's sole output record.
type TaxCalculationResult struct {
	Bases          Bases
	Taxes          Taxes
	LeaseBreakdown *LeaseBreakdown
	Debug          Debug
}
