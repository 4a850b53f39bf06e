// Package models holds the GORM-tagged persistence types for the
// calculation audit trail and result cache. The engine core never imports
// this package; these types exist only for the HTTP service layer.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONB stores arbitrary JSON in a PostgreSQL jsonb column.
type JSONB json.RawMessage

// Value implements driver.Valuer.
func (j JSONB) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return []byte(j), nil
}

// Scan implements sql.Scanner.
func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*j = JSONB(v)
	case string:
		*j = JSONB([]byte(v))
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (j JSONB) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return []byte(j), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (j *JSONB) UnmarshalJSON(data []byte) error {
	*j = JSONB(data)
	return nil
}

// CalculationAuditRecord captures the input and result of one
// CalculateTax call made through the HTTP service, for audit and
// dispute-resolution purposes. The pure engine never writes this record
// itself — internal/services does, after the calculation succeeds.
type CalculationAuditRecord struct {
	ID uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`

	StateCode string `json:"stateCode" gorm:"type:varchar(2);not null;index"`
	DealType  string `json:"dealType" gorm:"type:varchar(16);not null"`

	InputJSON  JSONB `json:"inputJson" gorm:"type:jsonb;not null"`
	ResultJSON JSONB `json:"resultJson" gorm:"type:jsonb;not null"`

	TotalTax string `json:"totalTax" gorm:"type:varchar(32);not null"`

	CreatedAt time.Time `json:"createdAt"`
}

// CalculationCacheEntry caches a previously computed result keyed by a hash
// of its input, so identical requests within the TTL window skip the
// engine entirely.
type CalculationCacheEntry struct {
	ID uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`

	CacheKey   string `json:"cacheKey" gorm:"type:varchar(128);not null;uniqueIndex"`
	ResultJSON JSONB  `json:"resultJson" gorm:"type:jsonb;not null"`

	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null;index"`
}

// BeforeCreate defaults ExpiresAt to a one-hour TTL when the caller did not
// set one explicitly.
func (c *CalculationCacheEntry) BeforeCreate(tx *gorm.DB) error {
	if c.ExpiresAt.IsZero() {
		c.ExpiresAt = time.Now().Add(1 * time.Hour)
	}
	return nil
}
