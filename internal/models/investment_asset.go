package models

import "time"

// InvestmentAsset is the join row linking an asset to a portfolio.
type InvestmentAsset struct {
	Base
	AssociationDate       time.Time `gorm:"not null" json:"association_date"`
	AssetID               string    `gorm:"type:uuid;not null;index" json:"asset_id"`
	InvestmentPortfolioID string    `gorm:"type:uuid;not null;index" json:"investment_portfolio_id"`

	// Relationships
	Asset               Asset               `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
	InvestmentPortfolio InvestmentPortfolio `gorm:"foreignKey:InvestmentPortfolioID" json:"investment_portfolio,omitempty"`
}
