package services

import (
	"investapp/internal/dto"
	"investapp/internal/logger"
	"investapp/internal/models"
	"investapp/internal/repository"
)

// PortfolioService serves investment portfolio data to the web pages. All
// reads and writes are scoped to the owning user.
type PortfolioService struct {
	portfolios *repository.PortfolioRepository
}

// NewPortfolioService creates a PortfolioService.
func NewPortfolioService(portfolios *repository.PortfolioRepository) *PortfolioService {
	return &PortfolioService{portfolios: portfolios}
}

// GetAllByUser returns the user's portfolios with link rows loaded, or an
// empty list on failure.
func (s *PortfolioService) GetAllByUser(userID string) []dto.PortfolioDTO {
	var entities []models.InvestmentPortfolio
	err := s.portfolios.QueryWithInclude("InvestmentAssets").
		Where("user_id = ?", userID).
		Find(&entities).Error
	if err != nil {
		logger.Get().Errorw("portfolio list failed", "user_id", userID, "error", err.Error())
		return []dto.PortfolioDTO{}
	}
	dtos := make([]dto.PortfolioDTO, 0, len(entities))
	for i := range entities {
		dtos = append(dtos, dto.PortfolioToDTO(&entities[i]))
	}
	return dtos
}

// GetByID returns one portfolio only when it belongs to the user, or nil.
func (s *PortfolioService) GetByID(id, userID string) *dto.PortfolioDTO {
	entity, err := s.portfolios.GetByIDForUser(id, userID)
	if err != nil {
		logger.Get().Errorw("portfolio fetch failed", "id", id, "error", err.Error())
		return nil
	}
	if entity == nil {
		return nil
	}
	result := dto.PortfolioToDTO(entity)
	return &result
}

// Add persists a new portfolio. Returns nil on failure.
func (s *PortfolioService) Add(d dto.PortfolioDTO) *dto.PortfolioDTO {
	entity := dto.PortfolioFromDTO(d)
	entity.ID = ""
	created, err := s.portfolios.Add(&entity)
	if err != nil {
		logger.Get().Errorw("portfolio create failed", "error", err.Error())
		return nil
	}
	result := dto.PortfolioToDTO(created)
	return &result
}

// Update overwrites a portfolio when the user owns it. Returns false
// otherwise.
func (s *PortfolioService) Update(id, userID string, d dto.PortfolioDTO) bool {
	existing, err := s.portfolios.GetByIDForUser(id, userID)
	if err != nil || existing == nil {
		return false
	}
	entity := models.InvestmentPortfolio{
		Name:        d.Name,
		Description: d.Description,
		UserID:      userID,
	}
	updated, err := s.portfolios.Update(id, &entity)
	if err != nil {
		logger.Get().Errorw("portfolio update failed", "id", id, "error", err.Error())
		return false
	}
	return updated != nil
}

// Delete removes a portfolio when the user owns it. Returns false otherwise.
func (s *PortfolioService) Delete(id, userID string) bool {
	existing, err := s.portfolios.GetByIDForUser(id, userID)
	if err != nil || existing == nil {
		return false
	}
	if err := s.portfolios.Delete(id); err != nil {
		logger.Get().Errorw("portfolio delete failed", "id", id, "error", err.Error())
		return false
	}
	return true
}
