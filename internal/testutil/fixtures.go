package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"investapp/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword satisfies the account password policy and matches the hash
// stored by CreateTestUser.
const TestPassword = "Password123!"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a confirmed investor with a hashed password and a
// unique username and email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	n := nextID()
	return CreateTestUserWithUsername(t, db, fmt.Sprintf("user%d", n))
}

// CreateTestUserWithUsername creates a confirmed investor with the given username.
func CreateTestUserWithUsername(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:          fmt.Sprintf("%s@test.com", username),
		Username:       username,
		Password:       string(hash),
		Name:           "Test",
		LastName:       "User",
		Role:           models.RoleInvestor,
		EmailConfirmed: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateUnconfirmedUser creates a user whose email is not yet confirmed.
func CreateUnconfirmedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := CreateTestUser(t, db)
	user.EmailConfirmed = false
	user.ConfirmationToken = "fixture-confirmation-token"
	if err := db.Save(user).Error; err != nil {
		t.Fatalf("failed to unconfirm test user: %v", err)
	}
	return user
}

// CreateTestAssetType creates an asset type with a unique name.
func CreateTestAssetType(t *testing.T, db *gorm.DB) *models.AssetType {
	t.Helper()

	assetType := &models.AssetType{
		Name:        fmt.Sprintf("Test Type %d", nextID()),
		Description: "fixture asset type",
	}
	if err := db.Create(assetType).Error; err != nil {
		t.Fatalf("failed to create test asset type: %v", err)
	}
	return assetType
}

// CreateTestAsset creates an asset of the given type.
func CreateTestAsset(t *testing.T, db *gorm.DB, assetTypeID string) *models.Asset {
	t.Helper()
	n := nextID()
	return CreateTestAssetNamed(t, db, assetTypeID, fmt.Sprintf("Test Asset %d", n), fmt.Sprintf("TST%d", n))
}

// CreateTestAssetNamed creates an asset with the given name and symbol.
func CreateTestAssetNamed(t *testing.T, db *gorm.DB, assetTypeID, name, symbol string) *models.Asset {
	t.Helper()

	asset := &models.Asset{
		Name:        name,
		Description: "fixture asset",
		Symbol:      symbol,
		AssetTypeID: assetTypeID,
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test asset: %v", err)
	}
	return asset
}

// CreateTestAssetHistory records a value for an asset at the given date.
func CreateTestAssetHistory(t *testing.T, db *gorm.DB, assetID string, value float64, date time.Time) *models.AssetHistory {
	t.Helper()

	history := &models.AssetHistory{
		AssetID:   assetID,
		Value:     decimal.NewFromFloat(value),
		ValueDate: date,
	}
	if err := db.Create(history).Error; err != nil {
		t.Fatalf("failed to create test asset history: %v", err)
	}
	return history
}

// CreateTestPortfolio creates a portfolio owned by the given user.
func CreateTestPortfolio(t *testing.T, db *gorm.DB, userID string) *models.InvestmentPortfolio {
	t.Helper()

	portfolio := &models.InvestmentPortfolio{
		Name:        fmt.Sprintf("Test Portfolio %d", nextID()),
		Description: "fixture portfolio",
		UserID:      userID,
	}
	if err := db.Create(portfolio).Error; err != nil {
		t.Fatalf("failed to create test portfolio: %v", err)
	}
	return portfolio
}

// LinkAssetToPortfolio creates the portfolio-asset association row.
func LinkAssetToPortfolio(t *testing.T, db *gorm.DB, portfolioID, assetID string) *models.InvestmentAsset {
	t.Helper()

	link := &models.InvestmentAsset{
		AssociationDate:       time.Now().UTC(),
		AssetID:               assetID,
		InvestmentPortfolioID: portfolioID,
	}
	if err := db.Create(link).Error; err != nil {
		t.Fatalf("failed to link asset to portfolio: %v", err)
	}
	return link
}
