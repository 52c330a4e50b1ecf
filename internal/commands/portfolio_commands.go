package commands

import (
	"investapp/internal/dto"
	apperrors "investapp/internal/errors"
	"investapp/internal/models"
	"investapp/internal/pagination"
	"investapp/internal/repository"
	"investapp/internal/validation"
)

// SavePortfolioRequest carries the fields for creating or updating a
// portfolio. The owner is always the authenticated caller, never a request
// field.
type SavePortfolioRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// PortfolioCommands groups the investment portfolio use cases. All mutating
// operations are scoped to the calling user.
type PortfolioCommands struct {
	portfolios *repository.PortfolioRepository
}

// NewPortfolioCommands creates the portfolio use cases.
func NewPortfolioCommands(portfolios *repository.PortfolioRepository) *PortfolioCommands {
	return &PortfolioCommands{portfolios: portfolios}
}

// Create persists a new portfolio owned by userID.
func (c *PortfolioCommands) Create(userID string, req SavePortfolioRequest) (*dto.PortfolioDTO, error) {
	err := validation.Run(
		validation.Required("name", req.Name),
		validation.MaxLen("name", req.Name, 100),
	)
	if err != nil {
		return nil, err
	}

	entity := models.InvestmentPortfolio{
		Name:        req.Name,
		Description: req.Description,
		UserID:      userID,
	}
	created, err := c.portfolios.Add(&entity)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := dto.PortfolioToDTO(created)
	return &result, nil
}

// Update overwrites a portfolio the caller owns. A portfolio owned by a
// different user is reported as not owned, not as missing.
func (c *PortfolioCommands) Update(userID, id string, req SavePortfolioRequest) (*dto.PortfolioDTO, error) {
	err := validation.Run(
		validation.Required("name", req.Name),
		validation.MaxLen("name", req.Name, 100),
	)
	if err != nil {
		return nil, err
	}

	if err := c.requireOwnership(userID, id); err != nil {
		return nil, err
	}

	entity := models.InvestmentPortfolio{
		Name:        req.Name,
		Description: req.Description,
		UserID:      userID,
	}
	updated, err := c.portfolios.Update(id, &entity)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if updated == nil {
		return nil, apperrors.ErrPortfolioNotFound
	}

	result := dto.PortfolioToDTO(updated)
	return &result, nil
}

// Delete removes a portfolio the caller owns.
func (c *PortfolioCommands) Delete(userID, id string) error {
	if err := c.requireOwnership(userID, id); err != nil {
		return err
	}
	if err := c.portfolios.Delete(id); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetByID fetches one portfolio owned by the caller.
func (c *PortfolioCommands) GetByID(userID, id string) (*dto.PortfolioDTO, error) {
	portfolio, err := c.portfolios.GetByIDForUser(id, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if portfolio == nil {
		return nil, apperrors.ErrPortfolioNotFound
	}
	result := dto.PortfolioToDTO(portfolio)
	return &result, nil
}

// GetAllByUser lists the caller's portfolios with their link rows loaded.
func (c *PortfolioCommands) GetAllByUser(userID string, page pagination.PageRequest) (*pagination.PageResponse[dto.PortfolioDTO], error) {
	base := c.portfolios.QueryWithInclude("InvestmentAssets").
		Where("user_id = ?", userID)

	result, err := pagination.List[models.InvestmentPortfolio](base, page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	dtos := make([]dto.PortfolioDTO, 0, len(result.Data))
	for i := range result.Data {
		dtos = append(dtos, dto.PortfolioToDTO(&result.Data[i]))
	}
	resp := pagination.NewPageResponse(dtos, result.Page, result.PageSize, result.TotalItems)
	return &resp, nil
}

// requireOwnership resolves the portfolio and checks the caller owns it.
func (c *PortfolioCommands) requireOwnership(userID, id string) error {
	portfolio, err := c.portfolios.GetByID(id)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if portfolio == nil {
		return apperrors.ErrPortfolioNotFound
	}
	if portfolio.UserID != userID {
		return apperrors.ErrNotPortfolioOwner
	}
	return nil
}
