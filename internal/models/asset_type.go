package models

// AssetType classifies assets (e.g. Crypto, Stocks, Real Estate).
type AssetType struct {
	Base
	Name        string `gorm:"not null;uniqueIndex" json:"name"`
	Description string `json:"description"`

	// Relationships
	Assets []Asset `gorm:"foreignKey:AssetTypeID" json:"assets,omitempty"`
}
