package dto

import (
	"sort"

	"investapp/internal/models"

	"github.com/shopspring/decimal"
)

// AssetDTO is the transport shape for an asset.
type AssetDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Symbol        string `json:"symbol"`
	AssetTypeID   string `json:"asset_type_id"`
	AssetTypeName string `json:"asset_type_name,omitempty"`
}

// AssetForPortfolioDTO is the asset shape returned by the portfolio asset
// listing. CurrentValue is the value of the most recent history record by
// date, or zero when the asset has no history.
type AssetForPortfolioDTO struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Symbol        string          `json:"symbol"`
	AssetTypeID   string          `json:"asset_type_id"`
	AssetTypeName string          `json:"asset_type_name"`
	CurrentValue  decimal.Decimal `json:"current_value"`
}

// AssetViewModel is the server-rendered page shape for an asset.
type AssetViewModel struct {
	ID            string
	Name          string
	Description   string
	Symbol        string
	AssetTypeID   string
	AssetTypeName string
}

// AssetToDTO maps an entity to its DTO. The type name is filled in only
// when the AssetType association was loaded.
func AssetToDTO(e *models.Asset) AssetDTO {
	return AssetDTO{
		ID:            e.ID,
		Name:          e.Name,
		Description:   e.Description,
		Symbol:        e.Symbol,
		AssetTypeID:   e.AssetTypeID,
		AssetTypeName: e.AssetType.Name,
	}
}

// AssetFromDTO maps a DTO back to an entity. Navigation properties are not
// reconstructed.
func AssetFromDTO(d AssetDTO) models.Asset {
	return models.Asset{
		Base:        models.Base{ID: d.ID},
		Name:        d.Name,
		Description: d.Description,
		Symbol:      d.Symbol,
		AssetTypeID: d.AssetTypeID,
	}
}

// AssetToViewModel maps a DTO to the page view model.
func AssetToViewModel(d AssetDTO) AssetViewModel {
	return AssetViewModel(d)
}

// AssetFromViewModel maps a page view model back to a DTO.
func AssetFromViewModel(vm AssetViewModel) AssetDTO {
	return AssetDTO(vm)
}

// CurrentValue returns the value of the asset's most recent history record
// by date, or zero when it has none.
func CurrentValue(e *models.Asset) decimal.Decimal {
	if len(e.AssetHistories) == 0 {
		return decimal.Zero
	}
	latest := e.AssetHistories[0]
	for _, h := range e.AssetHistories[1:] {
		if h.ValueDate.After(latest.ValueDate) {
			latest = h
		}
	}
	return latest.Value
}

// AssetToPortfolioDTO maps an asset with loaded type and histories to the
// portfolio listing shape.
func AssetToPortfolioDTO(e *models.Asset) AssetForPortfolioDTO {
	return AssetForPortfolioDTO{
		ID:            e.ID,
		Name:          e.Name,
		Description:   e.Description,
		Symbol:        e.Symbol,
		AssetTypeID:   e.AssetTypeID,
		AssetTypeName: e.AssetType.Name,
		CurrentValue:  CurrentValue(e),
	}
}

// SortPortfolioAssets re-sorts an already-materialized portfolio asset list
// in memory: ascending by name, or descending by current value. Unknown
// orderings fall back to name ascending.
func SortPortfolioAssets(assets []AssetForPortfolioDTO, order models.AssetOrder) {
	switch order {
	case models.AssetOrderByCurrentValue:
		sort.SliceStable(assets, func(i, j int) bool {
			return assets[i].CurrentValue.GreaterThan(assets[j].CurrentValue)
		})
	default:
		sort.SliceStable(assets, func(i, j int) bool {
			return assets[i].Name < assets[j].Name
		})
	}
}
