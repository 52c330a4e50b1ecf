// Package services is the web front-end's data layer. Unlike the command
// layer used by the API, these methods log failures and return nil, false
// or an empty list, so pages degrade instead of rendering error responses.
package services

import (
	"investapp/internal/dto"
	"investapp/internal/logger"
	"investapp/internal/models"
	"investapp/internal/repository"
)

// AssetTypeService serves asset type data to the web pages.
type AssetTypeService struct {
	assetTypes *repository.AssetTypeRepository
}

// NewAssetTypeService creates an AssetTypeService.
func NewAssetTypeService(assetTypes *repository.AssetTypeRepository) *AssetTypeService {
	return &AssetTypeService{assetTypes: assetTypes}
}

// GetAll returns every asset type, or an empty list on failure.
func (s *AssetTypeService) GetAll() []dto.AssetTypeDTO {
	entities, err := s.assetTypes.GetAll()
	if err != nil {
		logger.Get().Errorw("asset type list failed", "error", err.Error())
		return []dto.AssetTypeDTO{}
	}
	dtos := make([]dto.AssetTypeDTO, 0, len(entities))
	for i := range entities {
		dtos = append(dtos, dto.AssetTypeToDTO(&entities[i]))
	}
	return dtos
}

// GetByID returns one asset type, or nil when missing or on failure.
func (s *AssetTypeService) GetByID(id string) *dto.AssetTypeDTO {
	entity, err := s.assetTypes.GetByID(id)
	if err != nil {
		logger.Get().Errorw("asset type fetch failed", "id", id, "error", err.Error())
		return nil
	}
	if entity == nil {
		return nil
	}
	result := dto.AssetTypeToDTO(entity)
	return &result
}

// Add persists a new asset type. Returns nil on failure.
func (s *AssetTypeService) Add(d dto.AssetTypeDTO) *dto.AssetTypeDTO {
	entity := dto.AssetTypeFromDTO(d)
	entity.ID = ""
	created, err := s.assetTypes.Add(&entity)
	if err != nil {
		logger.Get().Errorw("asset type create failed", "error", err.Error())
		return nil
	}
	result := dto.AssetTypeToDTO(created)
	return &result
}

// Update overwrites an asset type. Returns false when the id is unknown or
// the write fails.
func (s *AssetTypeService) Update(id string, d dto.AssetTypeDTO) bool {
	entity := models.AssetType{Name: d.Name, Description: d.Description}
	updated, err := s.assetTypes.Update(id, &entity)
	if err != nil {
		logger.Get().Errorw("asset type update failed", "id", id, "error", err.Error())
		return false
	}
	return updated != nil
}

// Delete removes an asset type. Returns false on failure.
func (s *AssetTypeService) Delete(id string) bool {
	if err := s.assetTypes.Delete(id); err != nil {
		logger.Get().Errorw("asset type delete failed", "id", id, "error", err.Error())
		return false
	}
	return true
}
