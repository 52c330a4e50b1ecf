package services

import (
	"investapp/internal/dto"
	"investapp/internal/logger"
	"investapp/internal/models"
	"investapp/internal/repository"
)

// AssetHistoryService serves asset history data to the web pages.
type AssetHistoryService struct {
	histories *repository.AssetHistoryRepository
}

// NewAssetHistoryService creates an AssetHistoryService.
func NewAssetHistoryService(histories *repository.AssetHistoryRepository) *AssetHistoryService {
	return &AssetHistoryService{histories: histories}
}

// GetAllByAsset returns the history records of one asset, newest first, or
// an empty list on failure.
func (s *AssetHistoryService) GetAllByAsset(assetID string) []dto.AssetHistoryDTO {
	var entities []models.AssetHistory
	err := s.histories.Query().
		Where("asset_id = ?", assetID).
		Order("value_date DESC").
		Find(&entities).Error
	if err != nil {
		logger.Get().Errorw("asset history list failed", "asset_id", assetID, "error", err.Error())
		return []dto.AssetHistoryDTO{}
	}
	dtos := make([]dto.AssetHistoryDTO, 0, len(entities))
	for i := range entities {
		dtos = append(dtos, dto.AssetHistoryToDTO(&entities[i]))
	}
	return dtos
}

// GetByID returns one history record, or nil when missing or on failure.
func (s *AssetHistoryService) GetByID(id string) *dto.AssetHistoryDTO {
	entity, err := s.histories.GetByID(id)
	if err != nil || entity == nil {
		return nil
	}
	result := dto.AssetHistoryToDTO(entity)
	return &result
}

// Add appends a history record. Returns nil on failure.
func (s *AssetHistoryService) Add(d dto.AssetHistoryDTO) *dto.AssetHistoryDTO {
	entity := dto.AssetHistoryFromDTO(d)
	entity.ID = ""
	created, err := s.histories.Add(&entity)
	if err != nil {
		logger.Get().Errorw("asset history create failed", "error", err.Error())
		return nil
	}
	result := dto.AssetHistoryToDTO(created)
	return &result
}

// Update edits a history record's value and date. Returns false when the id
// is unknown or the write fails.
func (s *AssetHistoryService) Update(id string, d dto.AssetHistoryDTO) bool {
	entity := dto.AssetHistoryFromDTO(d)
	entity.ID = ""
	updated, err := s.histories.Update(id, &entity)
	if err != nil {
		logger.Get().Errorw("asset history update failed", "id", id, "error", err.Error())
		return false
	}
	return updated != nil
}

// Delete removes a history record. Returns false on failure.
func (s *AssetHistoryService) Delete(id string) bool {
	if err := s.histories.Delete(id); err != nil {
		logger.Get().Errorw("asset history delete failed", "id", id, "error", err.Error())
		return false
	}
	return true
}
