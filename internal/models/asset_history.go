package models

import (
	"time"

	"investapp/internal/uuid"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AssetHistory is an append-only price record for an asset.
// No Base embed: history rows are never soft-deleted.
type AssetHistory struct {
	ID        string          `gorm:"type:uuid;primaryKey" json:"id"`
	Value     decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"value"`
	ValueDate time.Time       `gorm:"not null;index" json:"value_date"`
	AssetID   string          `gorm:"type:uuid;not null;index" json:"asset_id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	Asset Asset `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (h *AssetHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.New()
	}
	return nil
}
