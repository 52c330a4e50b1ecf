package commands

import (
	"strings"

	"investapp/internal/dto"
	apperrors "investapp/internal/errors"
	"investapp/internal/models"
	"investapp/internal/pagination"
	"investapp/internal/repository"
	"investapp/internal/validation"
)

// SaveAssetRequest carries the fields for creating or updating an asset.
type SaveAssetRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
	Symbol      string `json:"symbol" binding:"required,max=20"`
	AssetTypeID string `json:"asset_type_id" binding:"required,uuid"`
}

// PortfolioAssetsQuery holds the optional filters for the asset-by-portfolio
// listing. The name filter is a case-sensitive substring match; the type
// filter is an exact id match.
type PortfolioAssetsQuery struct {
	AssetName   string            `form:"asset_name"`
	AssetTypeID string            `form:"asset_type_id" binding:"omitempty,uuid"`
	OrderBy     models.AssetOrder `form:"order_by" binding:"omitempty,asset_order"`
}

// AssetCommands groups the asset use cases.
type AssetCommands struct {
	assets           *repository.AssetRepository
	assetTypes       *repository.AssetTypeRepository
	investmentAssets *repository.InvestmentAssetRepository
}

// NewAssetCommands creates the asset use cases.
func NewAssetCommands(
	assets *repository.AssetRepository,
	assetTypes *repository.AssetTypeRepository,
	investmentAssets *repository.InvestmentAssetRepository,
) *AssetCommands {
	return &AssetCommands{assets: assets, assetTypes: assetTypes, investmentAssets: investmentAssets}
}

// Create validates and persists a new asset. The asset type existence check
// lives in the rule chain, not in the persistence path.
func (c *AssetCommands) Create(req SaveAssetRequest) (*dto.AssetDTO, error) {
	err := validation.Run(
		validation.Required("name", req.Name),
		validation.Required("symbol", req.Symbol),
		validation.Exists("asset type does not exist", func() (bool, error) {
			return c.assetTypes.Exists(req.AssetTypeID)
		}),
	)
	if err != nil {
		return nil, err
	}

	entity := models.Asset{
		Name:        req.Name,
		Description: req.Description,
		Symbol:      req.Symbol,
		AssetTypeID: req.AssetTypeID,
	}
	created, err := c.assets.Add(&entity)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := dto.AssetToDTO(created)
	return &result, nil
}

// Update overwrites an existing asset.
func (c *AssetCommands) Update(id string, req SaveAssetRequest) (*dto.AssetDTO, error) {
	err := validation.Run(
		validation.Required("name", req.Name),
		validation.Required("symbol", req.Symbol),
		validation.Exists("asset type does not exist", func() (bool, error) {
			return c.assetTypes.Exists(req.AssetTypeID)
		}),
	)
	if err != nil {
		return nil, err
	}

	entity := models.Asset{
		Name:        req.Name,
		Description: req.Description,
		Symbol:      req.Symbol,
		AssetTypeID: req.AssetTypeID,
	}
	updated, err := c.assets.Update(id, &entity)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if updated == nil {
		return nil, apperrors.ErrAssetNotFound
	}

	result := dto.AssetToDTO(updated)
	return &result, nil
}

// Delete physically removes an asset after an existence check.
func (c *AssetCommands) Delete(id string) error {
	existing, err := c.assets.GetByID(id)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if existing == nil {
		return apperrors.ErrAssetNotFound
	}
	if err := c.assets.Delete(id); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetByID fetches one asset with its type loaded.
func (c *AssetCommands) GetByID(id string) (*dto.AssetDTO, error) {
	var entity models.Asset
	err := c.assets.QueryWithInclude("AssetType").
		Where("id = ?", id).
		First(&entity).Error
	if err != nil {
		if entityNotFound(err) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	result := dto.AssetToDTO(&entity)
	return &result, nil
}

// GetAll lists assets with their types, paginated.
func (c *AssetCommands) GetAll(page pagination.PageRequest) (*pagination.PageResponse[dto.AssetDTO], error) {
	result, err := pagination.List[models.Asset](c.assets.QueryWithInclude("AssetType"), page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	dtos := make([]dto.AssetDTO, 0, len(result.Data))
	for i := range result.Data {
		dtos = append(dtos, dto.AssetToDTO(&result.Data[i]))
	}
	resp := pagination.NewPageResponse(dtos, result.Page, result.PageSize, result.TotalItems)
	return &resp, nil
}

// GetAllByPortfolioID returns the assets linked to a portfolio, filtered and
// sorted. The join table is resolved first; an empty link set short-circuits
// without touching the asset table. Filters run in SQL, the final ordering
// runs in memory over the materialized list.
func (c *AssetCommands) GetAllByPortfolioID(portfolioID string, query PortfolioAssetsQuery) ([]dto.AssetForPortfolioDTO, error) {
	assetIDs, err := c.investmentAssets.AssetIDsByPortfolio(portfolioID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(assetIDs) == 0 {
		return []dto.AssetForPortfolioDTO{}, nil
	}

	q := c.assets.QueryWithInclude("AssetType", "AssetHistories").
		Where("id IN ?", assetIDs)

	if strings.TrimSpace(query.AssetName) != "" {
		q = q.Where("name LIKE ?", "%"+query.AssetName+"%")
	}
	if query.AssetTypeID != "" {
		q = q.Where("asset_type_id = ?", query.AssetTypeID)
	}

	var entities []models.Asset
	if err := q.Find(&entities).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	dtos := make([]dto.AssetForPortfolioDTO, 0, len(entities))
	for i := range entities {
		dtos = append(dtos, dto.AssetToPortfolioDTO(&entities[i]))
	}

	dto.SortPortfolioAssets(dtos, query.OrderBy)
	return dtos, nil
}
