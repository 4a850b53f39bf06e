// Package services adapts HTTP requests into calls against the pure
// internal/engine core, persisting an audit record and optionally serving a
// cached result for identical inputs.
package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tesseract-nexus/vehicle-tax-engine/internal/cache"
	"github.com/tesseract-nexus/vehicle-tax-engine/internal/engine"
	"github.com/tesseract-nexus/vehicle-tax-engine/internal/models"
	"github.com/tesseract-nexus/vehicle-tax-engine/internal/repository"
)

// AuditStore persists and retrieves calculation audit records. Satisfied by
// *repository.AuditRepository; an interface here so tests can substitute a
// mock without a database.
type AuditStore interface {
	Create(ctx context.Context, record *models.CalculationAuditRecord) error
	ListByState(ctx context.Context, stateCode string, limit int) ([]models.CalculationAuditRecord, error)
}

// ResultCacheStore persists calculation results keyed by input hash, as a
// fallback cache when Redis is unavailable. Satisfied by
// *repository.CacheRepository.
type ResultCacheStore interface {
	Get(ctx context.Context, key string) (*models.CalculationCacheEntry, error)
	Put(ctx context.Context, key string, resultJSON models.JSONB, ttl time.Duration) error
}

var (
	_ AuditStore       = (*repository.AuditRepository)(nil)
	_ ResultCacheStore = (*repository.CacheRepository)(nil)
)

// TaxService orchestrates one CalculateTax call: cache lookup, engine
// dispatch, audit persistence, cache write. The engine dispatcher itself
// never sees any of this — it is called exactly once per cache miss.
type TaxService struct {
	dispatcher *engine.Dispatcher
	auditRepo  AuditStore
	cacheRepo  ResultCacheStore
	redis      *cache.Client
	cacheTTL   time.Duration
	logger     *logrus.Logger
}

// NewTaxService creates a TaxService. redis may be nil, in which case the
// database-backed cache is used instead.
func NewTaxService(
	dispatcher *engine.Dispatcher,
	auditRepo AuditStore,
	cacheRepo ResultCacheStore,
	redisClient *cache.Client,
	cacheTTL time.Duration,
	logger *logrus.Logger,
) *TaxService {
	return &TaxService{
		dispatcher: dispatcher,
		auditRepo:  auditRepo,
		cacheRepo:  cacheRepo,
		redis:      redisClient,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// CalculateTax runs the full request lifecycle: try the cache, fall back to
// the engine on a miss, persist an audit record, and populate the cache for
// next time. Cache-write and audit failures are logged and a failed cache
// read is treated as a miss; none of them fails the request — the caller
// already has a correct, engine-computed result.
func (s *TaxService) CalculateTax(ctx context.Context, req models.CalculateTaxRequest) (engine.TaxCalculationResult, *engine.TaxError) {
	input := req.ToEngineInput()

	cacheKey, keyErr := cache.ResultKey(req.StateCode, req.DealType, input)
	if keyErr == nil {
		if cached, ok := s.lookupCache(ctx, cacheKey); ok {
			return cached, nil
		}
	}

	result, taxErr := s.dispatcher.CalculateTax(input)
	if taxErr != nil {
		return engine.TaxCalculationResult{}, taxErr
	}

	s.persistAudit(ctx, req, result)

	if keyErr == nil {
		s.storeCache(ctx, cacheKey, result)
	}

	return result, nil
}

// AuditHistory returns the most recent persisted calculations for a state,
// newest first.
func (s *TaxService) AuditHistory(ctx context.Context, stateCode string, limit int) ([]models.CalculationAuditRecord, error) {
	return s.auditRepo.ListByState(ctx, stateCode, limit)
}

// lookupCache tries Redis first, falling back to the Postgres-backed cache
// table when no Redis client is configured.
func (s *TaxService) lookupCache(ctx context.Context, key string) (engine.TaxCalculationResult, bool) {
	var result engine.TaxCalculationResult

	if s.redis != nil {
		if err := s.redis.GetResult(ctx, key, &result); err == nil {
			return result, true
		}
		return engine.TaxCalculationResult{}, false
	}

	if s.cacheRepo != nil {
		entry, err := s.cacheRepo.Get(ctx, key)
		if err == nil && entry != nil {
			if err := json.Unmarshal(entry.ResultJSON, &result); err == nil {
				return result, true
			}
		}
	}

	return engine.TaxCalculationResult{}, false
}

func (s *TaxService) storeCache(ctx context.Context, key string, result engine.TaxCalculationResult) {
	if s.redis != nil {
		if err := s.redis.SetResult(ctx, key, result, s.cacheTTL); err != nil {
			s.logger.WithError(err).Warn("failed to cache calculation result in redis")
		}
		return
	}

	if s.cacheRepo != nil {
		resultJSON, err := json.Marshal(result)
		if err != nil {
			s.logger.WithError(err).Warn("failed to encode result for db cache")
			return
		}
		if err := s.cacheRepo.Put(ctx, key, models.JSONB(resultJSON), s.cacheTTL); err != nil {
			s.logger.WithError(err).Warn("failed to cache calculation result in db")
		}
	}
}

func (s *TaxService) persistAudit(ctx context.Context, req models.CalculateTaxRequest, result engine.TaxCalculationResult) {
	inputJSON, err := json.Marshal(req)
	if err != nil {
		s.logger.WithError(err).Warn("failed to encode audit input")
		return
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		s.logger.WithError(err).Warn("failed to encode audit result")
		return
	}

	record := &models.CalculationAuditRecord{
		StateCode:  req.StateCode,
		DealType:   req.DealType,
		InputJSON:  models.JSONB(inputJSON),
		ResultJSON: models.JSONB(resultJSON),
		TotalTax:   result.Taxes.TotalTax.String(),
	}
	if err := s.auditRepo.Create(ctx, record); err != nil {
		s.logger.WithError(err).Warn("failed to persist calculation audit record")
	}
}
