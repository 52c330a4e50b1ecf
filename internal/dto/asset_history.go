package dto

import (
	"time"

	"investapp/internal/models"

	"github.com/shopspring/decimal"
)

// AssetHistoryDTO is the transport shape for an asset history record.
type AssetHistoryDTO struct {
	ID        string          `json:"id"`
	Value     decimal.Decimal `json:"value"`
	ValueDate time.Time       `json:"value_date"`
	AssetID   string          `json:"asset_id"`
	AssetName string          `json:"asset_name,omitempty"`
}

// AssetHistoryViewModel is the server-rendered page shape for a history record.
type AssetHistoryViewModel struct {
	ID        string
	Value     decimal.Decimal
	ValueDate time.Time
	AssetID   string
	AssetName string
}

// AssetHistoryToDTO maps an entity to its DTO.
func AssetHistoryToDTO(e *models.AssetHistory) AssetHistoryDTO {
	return AssetHistoryDTO{
		ID:        e.ID,
		Value:     e.Value,
		ValueDate: e.ValueDate,
		AssetID:   e.AssetID,
		AssetName: e.Asset.Name,
	}
}

// AssetHistoryFromDTO maps a DTO back to an entity. The Asset navigation is
// not reconstructed.
func AssetHistoryFromDTO(d AssetHistoryDTO) models.AssetHistory {
	return models.AssetHistory{
		ID:        d.ID,
		Value:     d.Value,
		ValueDate: d.ValueDate,
		AssetID:   d.AssetID,
	}
}

// AssetHistoryToViewModel maps a DTO to the page view model.
func AssetHistoryToViewModel(d AssetHistoryDTO) AssetHistoryViewModel {
	return AssetHistoryViewModel(d)
}

// AssetHistoryFromViewModel maps a page view model back to a DTO.
func AssetHistoryFromViewModel(vm AssetHistoryViewModel) AssetHistoryDTO {
	return AssetHistoryDTO(vm)
}
