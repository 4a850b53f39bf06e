// Package repository persists the calculation audit trail and result cache
// table behind a GORM/Postgres connection.
package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tesseract-nexus/vehicle-tax-engine/internal/models"
)

// AuditRepository records and retrieves calculation audit entries.
type AuditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create persists one audit record.
func (r *AuditRepository) Create(ctx context.Context, record *models.CalculationAuditRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// ListByState returns the most recent audit records for a state, newest
// first.
func (r *AuditRepository) ListByState(ctx context.Context, stateCode string, limit int) ([]models.CalculationAuditRecord, error) {
	var records []models.CalculationAuditRecord
	err := r.db.WithContext(ctx).
		Where("state_code = ?", stateCode).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// CacheRepository persists calculation results keyed by an input hash.
type CacheRepository struct {
	db *gorm.DB
}

// NewCacheRepository creates a new CacheRepository.
func NewCacheRepository(db *gorm.DB) *CacheRepository {
	return &CacheRepository{db: db}
}

// Get returns the cached entry for key if it exists and has not expired.
func (r *CacheRepository) Get(ctx context.Context, key string) (*models.CalculationCacheEntry, error) {
	var entry models.CalculationCacheEntry
	err := r.db.WithContext(ctx).
		Where("cache_key = ? AND expires_at > ?", key, time.Now()).
		First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// Put upserts the cache entry for key with the given TTL.
func (r *CacheRepository) Put(ctx context.Context, key string, resultJSON models.JSONB, ttl time.Duration) error {
	entry := models.CalculationCacheEntry{
		CacheKey:   key,
		ResultJSON: resultJSON,
		ExpiresAt:  time.Now().Add(ttl),
	}
	return r.db.WithContext(ctx).
		Where("cache_key = ?", key).
		Assign(entry).
		FirstOrCreate(&entry).Error
}

// DeleteExpired removes cache rows past their TTL. Intended to be called
// periodically from a maintenance job; the pure engine never calls this.
func (r *CacheRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now()).
		Delete(&models.CalculationCacheEntry{}).Error
}
