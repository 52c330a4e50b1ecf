package repository_test

import (
	"testing"
	"time"

	"investapp/internal/models"
	"investapp/internal/repository"
	"investapp/internal/testutil"
)

func TestRepository_AddAndGetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := repository.NewAssetTypeRepository(db)

	created, err := repo.Add(&models.AssetType{Name: "Stocks", Description: "Listed equity"})
	testutil.AssertNoError(t, err)
	if created.ID == "" {
		t.Fatal("expected a generated id")
	}

	found, err := repo.GetByID(created.ID)
	testutil.AssertNoError(t, err)
	if found == nil || found.Name != "Stocks" {
		t.Fatalf("expected to find the created entity, got %+v", found)
	}
}

func TestRepository_AddNilFailsFast(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := repository.NewAssetTypeRepository(db)
	if _, err := repo.Add(nil); err == nil {
		t.Fatal("expected an error adding nil")
	}
}

func TestRepository_GetByIDMissingReturnsNil(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := repository.NewAssetTypeRepository(db)
	found, err := repo.GetByID("0198f1c2-0000-7000-8000-000000000000")
	testutil.AssertNoError(t, err)
	if found != nil {
		t.Fatalf("expected nil for a missing id, got %+v", found)
	}
}

func TestRepository_UpdateOverwritesAllFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := repository.NewAssetTypeRepository(db)
	created, err := repo.Add(&models.AssetType{Name: "Bonds", Description: "Fixed income"})
	testutil.AssertNoError(t, err)

	updated, err := repo.Update(created.ID, &models.AssetType{Name: "Crypto"})
	testutil.AssertNoError(t, err)
	if updated == nil {
		t.Fatal("expected the updated entity")
	}
	if updated.Name != "Crypto" {
		t.Errorf("expected name Crypto, got %q", updated.Name)
	}
	// full overwrite: the description not present in the update is cleared
	if updated.Description != "" {
		t.Errorf("expected description to be cleared, got %q", updated.Description)
	}
	if updated.ID != created.ID {
		t.Errorf("expected id to be preserved, got %q", updated.ID)
	}
}

func TestRepository_UpdateMissingReturnsNil(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := repository.NewAssetTypeRepository(db)
	updated, err := repo.Update("0198f1c2-0000-7000-8000-000000000000", &models.AssetType{Name: "X"})
	testutil.AssertNoError(t, err)
	if updated != nil {
		t.Fatalf("expected nil updating a missing id, got %+v", updated)
	}
}

func TestRepository_DeleteIsPhysical(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := repository.NewAssetTypeRepository(db)
	created, err := repo.Add(&models.AssetType{Name: "REITs"})
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, repo.Delete(created.ID))

	var count int64
	if err := db.Unscoped().Model(&models.AssetType{}).Where("id = ?", created.ID).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected the row to be physically gone, found %d", count)
	}
}

func TestRepository_Exists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := repository.NewAssetTypeRepository(db)
	created, err := repo.Add(&models.AssetType{Name: "ETFs"})
	testutil.AssertNoError(t, err)

	ok, err := repo.Exists(created.ID)
	testutil.AssertNoError(t, err)
	if !ok {
		t.Error("expected Exists to report true")
	}

	ok, err = repo.Exists("0198f1c2-0000-7000-8000-000000000000")
	testutil.AssertNoError(t, err)
	if ok {
		t.Error("expected Exists to report false for a missing id")
	}
}

func TestRepository_GetAllWithInclude(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	assetType := testutil.CreateTestAssetType(t, db)
	asset := testutil.CreateTestAsset(t, db, assetType.ID)
	testutil.CreateTestAssetHistory(t, db, asset.ID, 100, time.Now())

	repo := repository.NewAssetRepository(db)
	assets, err := repo.GetAllWithInclude("AssetType", "AssetHistories")
	testutil.AssertNoError(t, err)
	if len(assets) != 1 {
		t.Fatalf("expected 1 asset, got %d", len(assets))
	}
	if assets[0].AssetType.Name != assetType.Name {
		t.Errorf("expected asset type to be preloaded")
	}
	if len(assets[0].AssetHistories) != 1 {
		t.Errorf("expected histories to be preloaded, got %d", len(assets[0].AssetHistories))
	}
}

func TestUserRepository_ConfirmedEmails(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	confirmed := testutil.CreateTestUser(t, db)
	testutil.CreateUnconfirmedUser(t, db)

	repo := repository.NewUserRepository(db)
	emails, err := repo.ConfirmedEmails()
	testutil.AssertNoError(t, err)
	if len(emails) != 1 || emails[0] != confirmed.Email {
		t.Fatalf("expected only the confirmed address, got %v", emails)
	}
}

func TestInvestmentAssetRepository_AssetIDsByPortfolio(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	portfolio := testutil.CreateTestPortfolio(t, db, user.ID)
	assetType := testutil.CreateTestAssetType(t, db)
	a1 := testutil.CreateTestAsset(t, db, assetType.ID)
	a2 := testutil.CreateTestAsset(t, db, assetType.ID)
	testutil.LinkAssetToPortfolio(t, db, portfolio.ID, a1.ID)
	testutil.LinkAssetToPortfolio(t, db, portfolio.ID, a2.ID)

	repo := repository.NewInvestmentAssetRepository(db)
	ids, err := repo.AssetIDsByPortfolio(portfolio.ID)
	testutil.AssertNoError(t, err)
	if len(ids) != 2 {
		t.Fatalf("expected 2 asset ids, got %d", len(ids))
	}
}
