package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tesseract-nexus/vehicle-tax-engine/internal/engine"
	"github.com/tesseract-nexus/vehicle-tax-engine/internal/models"
)

// MockAuditStore is a mock implementation of AuditStore.
type MockAuditStore struct {
	mock.Mock
}

var _ AuditStore = (*MockAuditStore)(nil)

func (m *MockAuditStore) Create(ctx context.Context, record *models.CalculationAuditRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAuditStore) ListByState(ctx context.Context, stateCode string, limit int) ([]models.CalculationAuditRecord, error) {
	args := m.Called(ctx, stateCode, limit)
	records, _ := args.Get(0).([]models.CalculationAuditRecord)
	return records, args.Error(1)
}

// MockResultCacheStore is a mock implementation of ResultCacheStore.
type MockResultCacheStore struct {
	mock.Mock
}

var _ ResultCacheStore = (*MockResultCacheStore)(nil)

func (m *MockResultCacheStore) Get(ctx context.Context, key string) (*models.CalculationCacheEntry, error) {
	args := m.Called(ctx, key)
	entry, _ := args.Get(0).(*models.CalculationCacheEntry)
	return entry, args.Error(1)
}

func (m *MockResultCacheStore) Put(ctx context.Context, key string, resultJSON models.JSONB, ttl time.Duration) error {
	args := m.Called(ctx, key, resultJSON, ttl)
	return args.Error(0)
}

func indianaRegistry() *engine.MapRegistry {
	registry := engine.NewRegistry()
	registry.Register(engine.TaxRulesConfig{
		StateCode:             "IN",
		TradeInPolicy:         engine.TradeInPolicy{Kind: engine.TradeInFull},
		RebateRules:           []engine.RebateRule{{Scope: engine.RebateManufacturer, Taxable: true}, {Scope: engine.RebateDealer, Taxable: true}},
		DocFeeTaxable:         true,
		TaxOnAccessories:      true,
		TaxOnServiceContracts: true,
		TaxOnGap:              true,
		VehicleTaxScheme:      engine.SchemeStateOnly,
		Lease: engine.LeaseRules{
			Method:           engine.LeaseMonthly,
			DocFeeTaxability: engine.LeaseDocFeeFollowRetailRule,
			RebateBehavior:   engine.LeaseRebateFollowRetailRule,
			TradeInCredit:    engine.LeaseTradeInCreditFull,
			SpecialScheme:    engine.LeaseSchemeNone,
		},
	})
	return registry
}

func sampleRequest() models.CalculateTaxRequest {
	return models.CalculateTaxRequest{
		StateCode:    "IN",
		DealType:     "Retail",
		VehiclePrice: decimal.NewFromInt(30000),
		Rates:        []models.RateEntryRequest{{Label: "state", Rate: decimal.NewFromFloat(0.07)}},
	}
}

func TestTaxService_CacheMissComputesAndPersistsAudit(t *testing.T) {
	dispatcher := engine.NewDispatcher(indianaRegistry())
	auditStore := new(MockAuditStore)
	cacheStore := new(MockResultCacheStore)

	cacheStore.On("Get", mock.Anything, mock.Anything).Return((*models.CalculationCacheEntry)(nil), assert.AnError)
	cacheStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	auditStore.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewTaxService(dispatcher, auditStore, cacheStore, nil, time.Minute, logrus.New())
	result, err := service.CalculateTax(context.Background(), sampleRequest())

	require.Nil(t, err)
	assert.True(t, result.Taxes.TotalTax.Equal(decimal.NewFromFloat(2100.00)), "got %s", result.Taxes.TotalTax)
	auditStore.AssertExpectations(t)
	cacheStore.AssertExpectations(t)
}

func TestTaxService_DbCacheHitSkipsEngineAndAudit(t *testing.T) {
	dispatcher := engine.NewDispatcher(indianaRegistry())
	auditStore := new(MockAuditStore)
	cacheStore := new(MockResultCacheStore)

	cached := engine.TaxCalculationResult{Taxes: engine.Taxes{TotalTax: decimal.NewFromInt(999)}}
	cachedJSON, err := json.Marshal(cached)
	require.NoError(t, err)

	cacheStore.On("Get", mock.Anything, mock.Anything).Return(&models.CalculationCacheEntry{ResultJSON: models.JSONB(cachedJSON)}, nil)

	service := NewTaxService(dispatcher, auditStore, cacheStore, nil, time.Minute, logrus.New())
	result, taxErr := service.CalculateTax(context.Background(), sampleRequest())

	require.Nil(t, taxErr)
	assert.True(t, result.Taxes.TotalTax.Equal(decimal.NewFromInt(999)))
	auditStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTaxService_EngineErrorSkipsAuditAndCache(t *testing.T) {
	dispatcher := engine.NewDispatcher(engine.NewRegistry())
	auditStore := new(MockAuditStore)
	cacheStore := new(MockResultCacheStore)
	cacheStore.On("Get", mock.Anything, mock.Anything).Return((*models.CalculationCacheEntry)(nil), assert.AnError)

	service := NewTaxService(dispatcher, auditStore, cacheStore, nil, time.Minute, logrus.New())
	_, taxErr := service.CalculateTax(context.Background(), sampleRequest())

	require.NotNil(t, taxErr)
	assert.Equal(t, engine.ErrUnknownState, taxErr.Code)
	auditStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTaxService_AuditHistory_DelegatesToStore(t *testing.T) {
	dispatcher := engine.NewDispatcher(indianaRegistry())
	auditStore := new(MockAuditStore)
	cacheStore := new(MockResultCacheStore)

	expected := []models.CalculationAuditRecord{{StateCode: "IN", DealType: "Retail"}}
	auditStore.On("ListByState", mock.Anything, "IN", 10).Return(expected, nil)

	service := NewTaxService(dispatcher, auditStore, cacheStore, nil, time.Minute, logrus.New())
	records, err := service.AuditHistory(context.Background(), "IN", 10)

	require.NoError(t, err)
	assert.Equal(t, expected, records)
	auditStore.AssertExpectations(t)
}
