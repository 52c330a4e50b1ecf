package dto

import (
	"time"

	"investapp/internal/models"
)

// PortfolioDTO is the transport shape for an investment portfolio.
type PortfolioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	UserID      string `json:"user_id"`
	AssetCount  int    `json:"asset_count,omitempty"`
}

// PortfolioViewModel is the server-rendered page shape for a portfolio.
type PortfolioViewModel struct {
	ID          string
	Name        string
	Description string
	UserID      string
	AssetCount  int
}

// InvestmentAssetDTO is the transport shape for a portfolio-asset link.
type InvestmentAssetDTO struct {
	ID                    string    `json:"id"`
	AssociationDate       time.Time `json:"association_date"`
	AssetID               string    `json:"asset_id"`
	InvestmentPortfolioID string    `json:"investment_portfolio_id"`
	AssetName             string    `json:"asset_name,omitempty"`
}

// InvestmentAssetViewModel is the page shape for a portfolio-asset link.
type InvestmentAssetViewModel struct {
	ID                    string
	AssociationDate       time.Time
	AssetID               string
	InvestmentPortfolioID string
	AssetName             string
}

// PortfolioToDTO maps an entity to its DTO. AssetCount reflects the loaded
// link collection.
func PortfolioToDTO(e *models.InvestmentPortfolio) PortfolioDTO {
	return PortfolioDTO{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		UserID:      e.UserID,
		AssetCount:  len(e.InvestmentAssets),
	}
}

// PortfolioFromDTO maps a DTO back to an entity. Link rows are not
// reconstructed.
func PortfolioFromDTO(d PortfolioDTO) models.InvestmentPortfolio {
	return models.InvestmentPortfolio{
		Base:        models.Base{ID: d.ID},
		Name:        d.Name,
		Description: d.Description,
		UserID:      d.UserID,
	}
}

// PortfolioToViewModel maps a DTO to the page view model.
func PortfolioToViewModel(d PortfolioDTO) PortfolioViewModel {
	return PortfolioViewModel(d)
}

// PortfolioFromViewModel maps a page view model back to a DTO.
func PortfolioFromViewModel(vm PortfolioViewModel) PortfolioDTO {
	return PortfolioDTO(vm)
}

// InvestmentAssetToDTO maps a link entity to its DTO.
func InvestmentAssetToDTO(e *models.InvestmentAsset) InvestmentAssetDTO {
	return InvestmentAssetDTO{
		ID:                    e.ID,
		AssociationDate:       e.AssociationDate,
		AssetID:               e.AssetID,
		InvestmentPortfolioID: e.InvestmentPortfolioID,
		AssetName:             e.Asset.Name,
	}
}

// InvestmentAssetFromDTO maps a DTO back to a link entity. Navigation
// properties are not reconstructed.
func InvestmentAssetFromDTO(d InvestmentAssetDTO) models.InvestmentAsset {
	return models.InvestmentAsset{
		Base:                  models.Base{ID: d.ID},
		AssociationDate:       d.AssociationDate,
		AssetID:               d.AssetID,
		InvestmentPortfolioID: d.InvestmentPortfolioID,
	}
}

// InvestmentAssetToViewModel maps a DTO to the page view model.
func InvestmentAssetToViewModel(d InvestmentAssetDTO) InvestmentAssetViewModel {
	return InvestmentAssetViewModel(d)
}

// InvestmentAssetFromViewModel maps a page view model back to a DTO.
func InvestmentAssetFromViewModel(vm InvestmentAssetViewModel) InvestmentAssetDTO {
	return InvestmentAssetDTO(vm)
}
