package services

import (
	"strings"

	"investapp/internal/dto"
	"investapp/internal/logger"
	"investapp/internal/models"
	"investapp/internal/repository"
)

// AssetService serves asset data to the web pages.
type AssetService struct {
	assets           *repository.AssetRepository
	investmentAssets *repository.InvestmentAssetRepository
}

// NewAssetService creates an AssetService.
func NewAssetService(assets *repository.AssetRepository, investmentAssets *repository.InvestmentAssetRepository) *AssetService {
	return &AssetService{assets: assets, investmentAssets: investmentAssets}
}

// GetAll returns every asset with its type, or an empty list on failure.
func (s *AssetService) GetAll() []dto.AssetDTO {
	var entities []models.Asset
	if err := s.assets.QueryWithInclude("AssetType").Find(&entities).Error; err != nil {
		logger.Get().Errorw("asset list failed", "error", err.Error())
		return []dto.AssetDTO{}
	}
	dtos := make([]dto.AssetDTO, 0, len(entities))
	for i := range entities {
		dtos = append(dtos, dto.AssetToDTO(&entities[i]))
	}
	return dtos
}

// GetAllWithInclude returns every asset with its type name and the current
// value resolved from the loaded histories, or an empty list on failure.
// Backs the admin asset catalog.
func (s *AssetService) GetAllWithInclude() []dto.AssetForPortfolioDTO {
	entities, err := s.assets.GetAllWithInclude("AssetType", "AssetHistories")
	if err != nil {
		logger.Get().Errorw("asset list with include failed", "error", err.Error())
		return []dto.AssetForPortfolioDTO{}
	}
	dtos := make([]dto.AssetForPortfolioDTO, 0, len(entities))
	for i := range entities {
		dtos = append(dtos, dto.AssetToPortfolioDTO(&entities[i]))
	}
	return dtos
}

// GetAllEntitiesWithHistories returns the raw asset rows with type and
// histories loaded, for callers that need history values.
func (s *AssetService) GetAllEntitiesWithHistories() []models.Asset {
	entities, err := s.assets.GetAllWithInclude("AssetType", "AssetHistories")
	if err != nil {
		logger.Get().Errorw("asset list with histories failed", "error", err.Error())
		return []models.Asset{}
	}
	return entities
}

// GetByID returns one asset with its type, or nil when missing or on failure.
func (s *AssetService) GetByID(id string) *dto.AssetDTO {
	var entity models.Asset
	err := s.assets.QueryWithInclude("AssetType").
		Where("id = ?", id).
		First(&entity).Error
	if err != nil {
		return nil
	}
	result := dto.AssetToDTO(&entity)
	return &result
}

// Add persists a new asset. Returns nil on failure.
func (s *AssetService) Add(d dto.AssetDTO) *dto.AssetDTO {
	entity := dto.AssetFromDTO(d)
	entity.ID = ""
	created, err := s.assets.Add(&entity)
	if err != nil {
		logger.Get().Errorw("asset create failed", "error", err.Error())
		return nil
	}
	result := dto.AssetToDTO(created)
	return &result
}

// Update overwrites an asset. Returns false when the id is unknown or the
// write fails.
func (s *AssetService) Update(id string, d dto.AssetDTO) bool {
	entity := dto.AssetFromDTO(d)
	entity.ID = ""
	updated, err := s.assets.Update(id, &entity)
	if err != nil {
		logger.Get().Errorw("asset update failed", "id", id, "error", err.Error())
		return false
	}
	return updated != nil
}

// Delete removes an asset. Returns false on failure.
func (s *AssetService) Delete(id string) bool {
	if err := s.assets.Delete(id); err != nil {
		logger.Get().Errorw("asset delete failed", "id", id, "error", err.Error())
		return false
	}
	return true
}

// GetAllAssetsByPortfolioID returns the assets linked to a portfolio with
// optional name substring and type filters, sorted by the given order. An
// empty link set returns immediately; failures return an empty list.
func (s *AssetService) GetAllAssetsByPortfolioID(portfolioID, assetName, assetTypeID string, orderBy models.AssetOrder) []dto.AssetForPortfolioDTO {
	assetIDs, err := s.investmentAssets.AssetIDsByPortfolio(portfolioID)
	if err != nil {
		logger.Get().Errorw("portfolio asset ids failed", "portfolio_id", portfolioID, "error", err.Error())
		return []dto.AssetForPortfolioDTO{}
	}
	if len(assetIDs) == 0 {
		return []dto.AssetForPortfolioDTO{}
	}

	q := s.assets.QueryWithInclude("AssetType", "AssetHistories").
		Where("id IN ?", assetIDs)

	if strings.TrimSpace(assetName) != "" {
		q = q.Where("name LIKE ?", "%"+assetName+"%")
	}
	if assetTypeID != "" {
		q = q.Where("asset_type_id = ?", assetTypeID)
	}

	var entities []models.Asset
	if err := q.Find(&entities).Error; err != nil {
		logger.Get().Errorw("portfolio asset list failed", "portfolio_id", portfolioID, "error", err.Error())
		return []dto.AssetForPortfolioDTO{}
	}

	dtos := make([]dto.AssetForPortfolioDTO, 0, len(entities))
	for i := range entities {
		dtos = append(dtos, dto.AssetToPortfolioDTO(&entities[i]))
	}

	dto.SortPortfolioAssets(dtos, orderBy)
	return dtos
}
