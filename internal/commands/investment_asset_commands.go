package commands

import (
	"time"

	"investapp/internal/dto"
	apperrors "investapp/internal/errors"
	"investapp/internal/models"
	"investapp/internal/pagination"
	"investapp/internal/repository"
	"investapp/internal/validation"
)

// SaveInvestmentAssetRequest carries the fields for linking an asset to a
// portfolio.
type SaveInvestmentAssetRequest struct {
	AssetID               string     `json:"asset_id" binding:"required,uuid"`
	InvestmentPortfolioID string     `json:"investment_portfolio_id" binding:"required,uuid"`
	AssociationDate       *time.Time `json:"association_date"`
}

// InvestmentAssetCommands groups the portfolio-asset link use cases.
type InvestmentAssetCommands struct {
	links      *repository.InvestmentAssetRepository
	assets     *repository.AssetRepository
	portfolios *repository.PortfolioRepository
}

// NewInvestmentAssetCommands creates the link use cases.
func NewInvestmentAssetCommands(
	links *repository.InvestmentAssetRepository,
	assets *repository.AssetRepository,
	portfolios *repository.PortfolioRepository,
) *InvestmentAssetCommands {
	return &InvestmentAssetCommands{links: links, assets: assets, portfolios: portfolios}
}

// Create links an asset to a portfolio owned by the caller. Both ends of the
// link must exist.
func (c *InvestmentAssetCommands) Create(userID string, req SaveInvestmentAssetRequest) (*dto.InvestmentAssetDTO, error) {
	err := validation.Run(
		validation.Exists("asset does not exist", func() (bool, error) {
			return c.assets.Exists(req.AssetID)
		}),
		validation.Exists("investment portfolio does not exist", func() (bool, error) {
			return c.portfolios.Exists(req.InvestmentPortfolioID)
		}),
	)
	if err != nil {
		return nil, err
	}

	portfolio, err := c.portfolios.GetByID(req.InvestmentPortfolioID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if portfolio != nil && portfolio.UserID != userID {
		return nil, apperrors.ErrNotPortfolioOwner
	}

	associationDate := time.Now().UTC()
	if req.AssociationDate != nil {
		associationDate = *req.AssociationDate
	}

	entity := models.InvestmentAsset{
		AssetID:               req.AssetID,
		InvestmentPortfolioID: req.InvestmentPortfolioID,
		AssociationDate:       associationDate,
	}
	created, err := c.links.Add(&entity)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := dto.InvestmentAssetToDTO(created)
	return &result, nil
}

// Delete unlinks an asset from a portfolio owned by the caller.
func (c *InvestmentAssetCommands) Delete(userID, id string) error {
	link, err := c.links.GetByID(id)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if link == nil {
		return apperrors.ErrInvestmentAssetNotFound
	}

	portfolio, err := c.portfolios.GetByID(link.InvestmentPortfolioID)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if portfolio != nil && portfolio.UserID != userID {
		return apperrors.ErrNotPortfolioOwner
	}

	if err := c.links.Delete(id); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetByID fetches one link with its asset loaded.
func (c *InvestmentAssetCommands) GetByID(id string) (*dto.InvestmentAssetDTO, error) {
	var entity models.InvestmentAsset
	err := c.links.QueryWithInclude("Asset").
		Where("id = ?", id).
		First(&entity).Error
	if err != nil {
		if entityNotFound(err) {
			return nil, apperrors.ErrInvestmentAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	result := dto.InvestmentAssetToDTO(&entity)
	return &result, nil
}

// GetAllByPortfolio lists the link rows of one portfolio.
func (c *InvestmentAssetCommands) GetAllByPortfolio(portfolioID string, page pagination.PageRequest) (*pagination.PageResponse[dto.InvestmentAssetDTO], error) {
	base := c.links.QueryWithInclude("Asset").
		Where("investment_portfolio_id = ?", portfolioID)

	result, err := pagination.List[models.InvestmentAsset](base, page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	dtos := make([]dto.InvestmentAssetDTO, 0, len(result.Data))
	for i := range result.Data {
		dtos = append(dtos, dto.InvestmentAssetToDTO(&result.Data[i]))
	}
	resp := pagination.NewPageResponse(dtos, result.Page, result.PageSize, result.TotalItems)
	return &resp, nil
}
