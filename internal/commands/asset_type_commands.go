// Package commands implements the API use cases. Every handler follows the
// same shape: run validation rules, perform a single repository call, map
// the result to a DTO. Not-found conditions and rule failures surface as
// typed errors translated by the HTTP layer; this differs deliberately from
// the web services layer, which logs and returns empty values instead.
package commands

import (
	"investapp/internal/dto"
	apperrors "investapp/internal/errors"
	"investapp/internal/models"
	"investapp/internal/pagination"
	"investapp/internal/repository"
	"investapp/internal/validation"
)

// SaveAssetTypeRequest carries the fields for creating or updating an asset type.
type SaveAssetTypeRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// AssetTypeCommands groups the asset type use cases.
type AssetTypeCommands struct {
	assetTypes *repository.AssetTypeRepository
}

// NewAssetTypeCommands creates the asset type use cases.
func NewAssetTypeCommands(assetTypes *repository.AssetTypeRepository) *AssetTypeCommands {
	return &AssetTypeCommands{assetTypes: assetTypes}
}

// Create validates and persists a new asset type.
func (c *AssetTypeCommands) Create(req SaveAssetTypeRequest) (*dto.AssetTypeDTO, error) {
	err := validation.Run(
		validation.Required("name", req.Name),
		validation.MaxLen("name", req.Name, 100),
	)
	if err != nil {
		return nil, err
	}

	entity := models.AssetType{Name: req.Name, Description: req.Description}
	created, err := c.assetTypes.Add(&entity)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := dto.AssetTypeToDTO(created)
	return &result, nil
}

// Update overwrites an existing asset type.
func (c *AssetTypeCommands) Update(id string, req SaveAssetTypeRequest) (*dto.AssetTypeDTO, error) {
	err := validation.Run(
		validation.Required("name", req.Name),
		validation.MaxLen("name", req.Name, 100),
	)
	if err != nil {
		return nil, err
	}

	entity := models.AssetType{Name: req.Name, Description: req.Description}
	updated, err := c.assetTypes.Update(id, &entity)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if updated == nil {
		return nil, apperrors.ErrAssetTypeNotFound
	}

	result := dto.AssetTypeToDTO(updated)
	return &result, nil
}

// Delete physically removes an asset type after an existence check.
func (c *AssetTypeCommands) Delete(id string) error {
	existing, err := c.assetTypes.GetByID(id)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if existing == nil {
		return apperrors.ErrAssetTypeNotFound
	}
	if err := c.assetTypes.Delete(id); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetByID fetches one asset type.
func (c *AssetTypeCommands) GetByID(id string) (*dto.AssetTypeDTO, error) {
	entity, err := c.assetTypes.GetByID(id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if entity == nil {
		return nil, apperrors.ErrAssetTypeNotFound
	}
	result := dto.AssetTypeToDTO(entity)
	return &result, nil
}

// GetAll lists asset types with pagination.
func (c *AssetTypeCommands) GetAll(page pagination.PageRequest) (*pagination.PageResponse[dto.AssetTypeDTO], error) {
	result, err := pagination.List[models.AssetType](c.assetTypes.Query(), page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	dtos := make([]dto.AssetTypeDTO, 0, len(result.Data))
	for i := range result.Data {
		dtos = append(dtos, dto.AssetTypeToDTO(&result.Data[i]))
	}
	resp := pagination.NewPageResponse(dtos, result.Page, result.PageSize, result.TotalItems)
	return &resp, nil
}

// GetAllWithAssets lists every asset type with its assets eagerly loaded.
// Used by the v2 listing endpoint.
func (c *AssetTypeCommands) GetAllWithAssets() ([]dto.AssetTypeWithAssetsDTO, error) {
	entities, err := c.assetTypes.GetAllWithInclude("Assets")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	dtos := make([]dto.AssetTypeWithAssetsDTO, 0, len(entities))
	for i := range entities {
		dtos = append(dtos, dto.AssetTypeToWithAssetsDTO(&entities[i]))
	}
	return dtos, nil
}
