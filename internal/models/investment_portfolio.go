package models

// InvestmentPortfolio groups assets for a single owning user.
type InvestmentPortfolio struct {
	Base
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	UserID      string `gorm:"type:uuid;not null;index" json:"user_id"`

	// Relationships
	InvestmentAssets []InvestmentAsset `gorm:"foreignKey:InvestmentPortfolioID" json:"investment_assets,omitempty"`
}
