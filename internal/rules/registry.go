package rules

import "github.com/tesseract-nexus/vehicle-tax-engine/internal/engine"

// DefaultRegistry builds and returns the production rule registry: every
// state record this module has researched, plus the state-pair reciprocity
// matrix. Called once at startup (see cmd/server); the result is never
// mutated afterward.
func DefaultRegistry() *engine.MapRegistry {
	registry := engine.NewRegistry()

	for _, cfg := range []engine.TaxRulesConfig{
		indiana(),
		illinois(),
		alabama(),
		iowa(),
		georgia(),
		northCarolina(),
		westVirginia(),
		pennsylvania(),
		tennessee(),
		virginia(),
		rhodeIsland(),
		wyoming(),
		oklahoma(),
		northDakota(),
		newYork(),
		newJersey(),
		colorado(),
		texas(),
		maryland(),
		california(),
	} {
		registry.Register(cfg)
	}

	populateStatePairMatrix(registry.Matrix())

	return registry
}

// populateStatePairMatrix is where directional overrides not already
// expressed as a wildcard inside a state's own ReciprocityRules are
// recorded; no registered state needs one, so it registers none.
// North Carolina's 90-day HUT window is rule data on the NC record itself
// (see states_special.go); this matrix exists for overrides that depend on
// the specific (destination, origin) pair rather than the destination alone.
func populateStatePairMatrix(matrix *engine.StatePairMatrix) {
	// Rhode Island and Wyoming do not register per-origin overrides (DESIGN.md,
	// Open Question 3): their ReciprocityRules.Overrides is empty and
	// FindOverride always misses, so ResolveReciprocity falls through to
	// this matrix. Neither state has a documented carve-out, so nothing is
	// registered here for them either — the plain TaxPaid/CapAtThisStatesTax
	// policy on their own records is the entire answer.
}
