package services

import (
	"time"

	"investapp/internal/dto"
	"investapp/internal/logger"
	"investapp/internal/models"
	"investapp/internal/repository"
)

// InvestmentAssetService serves portfolio-asset link data to the web pages.
type InvestmentAssetService struct {
	links *repository.InvestmentAssetRepository
}

// NewInvestmentAssetService creates an InvestmentAssetService.
func NewInvestmentAssetService(links *repository.InvestmentAssetRepository) *InvestmentAssetService {
	return &InvestmentAssetService{links: links}
}

// GetAllByPortfolio returns the link rows of one portfolio with their assets
// loaded, or an empty list on failure.
func (s *InvestmentAssetService) GetAllByPortfolio(portfolioID string) []dto.InvestmentAssetDTO {
	var entities []models.InvestmentAsset
	err := s.links.QueryWithInclude("Asset").
		Where("investment_portfolio_id = ?", portfolioID).
		Find(&entities).Error
	if err != nil {
		logger.Get().Errorw("investment asset list failed", "portfolio_id", portfolioID, "error", err.Error())
		return []dto.InvestmentAssetDTO{}
	}
	dtos := make([]dto.InvestmentAssetDTO, 0, len(entities))
	for i := range entities {
		dtos = append(dtos, dto.InvestmentAssetToDTO(&entities[i]))
	}
	return dtos
}

// GetByID returns one link row, or nil when missing or on failure.
func (s *InvestmentAssetService) GetByID(id string) *dto.InvestmentAssetDTO {
	entity, err := s.links.GetByID(id)
	if err != nil {
		logger.Get().Errorw("investment asset fetch failed", "id", id, "error", err.Error())
		return nil
	}
	if entity == nil {
		return nil
	}
	result := dto.InvestmentAssetToDTO(entity)
	return &result
}

// Add links an asset to a portfolio, stamping the association date when not
// provided. Returns nil on failure.
func (s *InvestmentAssetService) Add(d dto.InvestmentAssetDTO) *dto.InvestmentAssetDTO {
	entity := dto.InvestmentAssetFromDTO(d)
	entity.ID = ""
	if entity.AssociationDate.IsZero() {
		entity.AssociationDate = time.Now().UTC()
	}
	created, err := s.links.Add(&entity)
	if err != nil {
		logger.Get().Errorw("investment asset create failed", "error", err.Error())
		return nil
	}
	result := dto.InvestmentAssetToDTO(created)
	return &result
}

// Delete removes a link row. Returns false on failure.
func (s *InvestmentAssetService) Delete(id string) bool {
	if err := s.links.Delete(id); err != nil {
		logger.Get().Errorw("investment asset delete failed", "id", id, "error", err.Error())
		return false
	}
	return true
}
