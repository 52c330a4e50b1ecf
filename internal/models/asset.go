package models

// Asset represents a tradable instrument belonging to an asset type.
type Asset struct {
	Base
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Symbol      string `gorm:"not null" json:"symbol"`
	AssetTypeID string `gorm:"type:uuid;not null" json:"asset_type_id"`

	// Relationships
	AssetType        AssetType         `gorm:"foreignKey:AssetTypeID" json:"asset_type,omitempty"`
	AssetHistories   []AssetHistory    `gorm:"foreignKey:AssetID" json:"asset_histories,omitempty"`
	InvestmentAssets []InvestmentAsset `gorm:"foreignKey:AssetID" json:"investment_assets,omitempty"`
}
