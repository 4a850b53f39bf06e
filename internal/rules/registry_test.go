package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesseract-nexus/vehicle-tax-engine/internal/engine"
)

func TestDefaultRegistry_RegistersExpectedStates(t *testing.T) {
	registry := DefaultRegistry()

	for _, code := range []string{"IN", "IL", "AL", "IA", "GA", "NC", "WV", "PA", "TN", "VA", "RI", "WY", "OK", "ND", "NY", "NJ", "CO", "TX", "MD", "CA"} {
		_, ok := registry.GetRulesForState(code)
		assert.True(t, ok, "expected a rule record for %s", code)
	}
}

func TestDefaultRegistry_CaliforniaIsStub(t *testing.T) {
	registry := DefaultRegistry()
	assert.False(t, registry.IsStateImplemented("CA"))
}

func TestDefaultRegistry_DispatcherEndToEnd(t *testing.T) {
	registry := DefaultRegistry()
	dispatcher := engine.NewDispatcher(registry)

	result, err := dispatcher.CalculateTax(engine.TaxCalculationInput{
		StateCode:    "GA",
		DealType:     engine.DealRetail,
		VehiclePrice: money(30000),
	})
	require.Nil(t, err)
	assert.False(t, result.Taxes.TotalTax.IsZero())
}
