package commands

import (
	"time"

	"investapp/internal/dto"
	apperrors "investapp/internal/errors"
	"investapp/internal/models"
	"investapp/internal/pagination"
	"investapp/internal/repository"
	"investapp/internal/validation"

	"github.com/shopspring/decimal"
)

// SaveAssetHistoryRequest carries the fields for creating or updating a
// history record.
type SaveAssetHistoryRequest struct {
	Value     decimal.Decimal `json:"value" binding:"required"`
	ValueDate time.Time       `json:"value_date" binding:"required"`
	AssetID   string          `json:"asset_id" binding:"required,uuid"`
}

// AssetHistoryCommands groups the asset history use cases.
type AssetHistoryCommands struct {
	histories *repository.AssetHistoryRepository
	assets    *repository.AssetRepository
}

// NewAssetHistoryCommands creates the asset history use cases.
func NewAssetHistoryCommands(histories *repository.AssetHistoryRepository, assets *repository.AssetRepository) *AssetHistoryCommands {
	return &AssetHistoryCommands{histories: histories, assets: assets}
}

// Create appends a new history record for an asset.
func (c *AssetHistoryCommands) Create(req SaveAssetHistoryRequest) (*dto.AssetHistoryDTO, error) {
	err := validation.Run(
		validation.Exists("asset does not exist", func() (bool, error) {
			return c.assets.Exists(req.AssetID)
		}),
	)
	if err != nil {
		return nil, err
	}

	entity := models.AssetHistory{
		Value:     req.Value,
		ValueDate: req.ValueDate,
		AssetID:   req.AssetID,
	}
	created, err := c.histories.Add(&entity)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := dto.AssetHistoryToDTO(created)
	return &result, nil
}

// Update edits the value and date of an existing history record. History
// rows are otherwise immutable.
func (c *AssetHistoryCommands) Update(id string, req SaveAssetHistoryRequest) (*dto.AssetHistoryDTO, error) {
	err := validation.Run(
		validation.Exists("asset does not exist", func() (bool, error) {
			return c.assets.Exists(req.AssetID)
		}),
	)
	if err != nil {
		return nil, err
	}

	entity := models.AssetHistory{
		Value:     req.Value,
		ValueDate: req.ValueDate,
		AssetID:   req.AssetID,
	}
	updated, err := c.histories.Update(id, &entity)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if updated == nil {
		return nil, apperrors.ErrAssetHistoryNotFound
	}

	result := dto.AssetHistoryToDTO(updated)
	return &result, nil
}

// Delete physically removes a history record by id.
func (c *AssetHistoryCommands) Delete(id string) error {
	existing, err := c.histories.GetByID(id)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if existing == nil {
		return apperrors.ErrAssetHistoryNotFound
	}
	if err := c.histories.Delete(id); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetByID fetches one history record.
func (c *AssetHistoryCommands) GetByID(id string) (*dto.AssetHistoryDTO, error) {
	entity, err := c.histories.GetByID(id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if entity == nil {
		return nil, apperrors.ErrAssetHistoryNotFound
	}
	result := dto.AssetHistoryToDTO(entity)
	return &result, nil
}

// GetAllByAsset lists the history records of one asset, newest first.
func (c *AssetHistoryCommands) GetAllByAsset(assetID string, page pagination.PageRequest) (*pagination.PageResponse[dto.AssetHistoryDTO], error) {
	base := c.histories.Query().
		Where("asset_id = ?", assetID).
		Order("value_date DESC")

	result, err := pagination.List[models.AssetHistory](base, page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	dtos := make([]dto.AssetHistoryDTO, 0, len(result.Data))
	for i := range result.Data {
		dtos = append(dtos, dto.AssetHistoryToDTO(&result.Data[i]))
	}
	resp := pagination.NewPageResponse(dtos, result.Page, result.PageSize, result.TotalItems)
	return &resp, nil
}
