package repository

import (
	"time"

	"investapp/internal/models"

	"gorm.io/gorm"
)

// AssetTypeRepository is the typed repository for asset types.
type AssetTypeRepository struct {
	*Repository[models.AssetType]
}

// NewAssetTypeRepository creates an AssetTypeRepository.
func NewAssetTypeRepository(db *gorm.DB) *AssetTypeRepository {
	return &AssetTypeRepository{Repository: New[models.AssetType](db)}
}

// AssetRepository is the typed repository for assets.
type AssetRepository struct {
	*Repository[models.Asset]
}

// NewAssetRepository creates an AssetRepository.
func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{Repository: New[models.Asset](db)}
}

// AssetHistoryRepository is the typed repository for asset histories.
type AssetHistoryRepository struct {
	*Repository[models.AssetHistory]
}

// NewAssetHistoryRepository creates an AssetHistoryRepository.
func NewAssetHistoryRepository(db *gorm.DB) *AssetHistoryRepository {
	return &AssetHistoryRepository{Repository: New[models.AssetHistory](db)}
}

// PortfolioRepository is the typed repository for investment portfolios.
type PortfolioRepository struct {
	*Repository[models.InvestmentPortfolio]
}

// NewPortfolioRepository creates a PortfolioRepository.
func NewPortfolioRepository(db *gorm.DB) *PortfolioRepository {
	return &PortfolioRepository{Repository: New[models.InvestmentPortfolio](db)}
}

// GetByIDForUser fetches a portfolio only when it belongs to the given user.
func (r *PortfolioRepository) GetByIDForUser(id, userID string) (*models.InvestmentPortfolio, error) {
	var portfolio models.InvestmentPortfolio
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&portfolio).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &portfolio, nil
}

// InvestmentAssetRepository is the typed repository for portfolio-asset links.
type InvestmentAssetRepository struct {
	*Repository[models.InvestmentAsset]
}

// NewInvestmentAssetRepository creates an InvestmentAssetRepository.
func NewInvestmentAssetRepository(db *gorm.DB) *InvestmentAssetRepository {
	return &InvestmentAssetRepository{Repository: New[models.InvestmentAsset](db)}
}

// AssetIDsByPortfolio returns the ids of all assets linked to a portfolio.
func (r *InvestmentAssetRepository) AssetIDsByPortfolio(portfolioID string) ([]string, error) {
	var ids []string
	err := r.Query().
		Where("investment_portfolio_id = ?", portfolioID).
		Pluck("asset_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// UserRepository is the typed repository for users.
type UserRepository struct {
	*Repository[models.User]
}

// NewUserRepository creates a UserRepository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{Repository: New[models.User](db)}
}

// GetByUsername fetches a user by username, or (nil, nil) when absent.
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail fetches a user by email, or (nil, nil) when absent.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ConfirmedEmails returns the addresses of all users with a confirmed email.
func (r *UserRepository) ConfirmedEmails() ([]string, error) {
	var emails []string
	err := r.Query().
		Where("email_confirmed = ? AND email <> ''", true).
		Pluck("email", &emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}

// TouchLastLogin stamps the user's last successful login time.
func (r *UserRepository) TouchLastLogin(userID string, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("last_login_at", at).Error
}
