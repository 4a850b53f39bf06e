// Package handlers wires gin HTTP routes to internal/services and
// internal/engine.
package handlers

import (
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tesseract-nexus/vehicle-tax-engine/internal/apiresponse"
	"github.com/tesseract-nexus/vehicle-tax-engine/internal/engine"
	"github.com/tesseract-nexus/vehicle-tax-engine/internal/models"
	"github.com/tesseract-nexus/vehicle-tax-engine/internal/services"
)

// TaxHandler serves the calculation endpoint.
type TaxHandler struct {
	service *services.TaxService
}

// NewTaxHandler creates a new TaxHandler.
func NewTaxHandler(service *services.TaxService) *TaxHandler {
	return &TaxHandler{service: service}
}

// CalculateTax handles POST /api/v1/tax/calculate.
func (h *TaxHandler) CalculateTax(c *gin.Context) {
	var req models.CalculateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiresponse.BadRequest(c, "InvalidRequestBody", err.Error())
		return
	}

	result, taxErr := h.service.CalculateTax(c.Request.Context(), req)
	if taxErr != nil {
		apiresponse.TaxError(c, taxErr)
		return
	}

	apiresponse.Success(c, result)
}

const defaultAuditHistoryLimit = 50

// AuditHistory handles GET /api/v1/audit/:stateCode, returning the most
// recent persisted calculations for that state, newest first.
func (h *TaxHandler) AuditHistory(c *gin.Context) {
	stateCode := c.Param("stateCode")

	limit := defaultAuditHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	records, err := h.service.AuditHistory(c.Request.Context(), stateCode, limit)
	if err != nil {
		apiresponse.InternalError(c, "AuditHistoryUnavailable", err.Error())
		return
	}

	apiresponse.Success(c, records)
}

// RegistryHandler serves the registry-introspection endpoints.
type RegistryHandler struct {
	registry engine.Registry
}

// NewRegistryHandler creates a new RegistryHandler.
func NewRegistryHandler(registry engine.Registry) *RegistryHandler {
	return &RegistryHandler{registry: registry}
}

// stateSummary is the wire shape for one row of GET /api/v1/states.
type stateSummary struct {
	StateCode   string `json:"stateCode"`
	Implemented bool   `json:"implemented"`
}

// ListStates handles GET /api/v1/states.
func (h *RegistryHandler) ListStates(c *gin.Context) {
	codes := h.registry.AllStateCodes()
	sort.Strings(codes)

	summaries := make([]stateSummary, 0, len(codes))
	for _, code := range codes {
		summaries = append(summaries, stateSummary{
			StateCode:   code,
			Implemented: h.registry.IsStateImplemented(code),
		})
	}

	apiresponse.Success(c, summaries)
}

// GetStateRules handles GET /api/v1/states/:code/rules.
func (h *RegistryHandler) GetStateRules(c *gin.Context) {
	code := c.Param("code")
	rules, ok := h.registry.GetRulesForState(code)
	if !ok {
		apiresponse.NotFound(c, string(engine.ErrUnknownState), "no rule record for state "+code)
		return
	}
	apiresponse.Success(c, rules)
}
