package commands_test

import (
	"testing"
	"time"

	"investapp/internal/commands"
	"investapp/internal/repository"
	"investapp/internal/testutil"
)

func TestInvestmentAssetCommands_CreateValidatesBothEnds(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	cmds := commands.NewInvestmentAssetCommands(
		repository.NewInvestmentAssetRepository(db),
		repository.NewAssetRepository(db),
		repository.NewPortfolioRepository(db),
	)

	_, err := cmds.Create(user.ID, commands.SaveInvestmentAssetRequest{
		AssetID:               "0198f1c2-0000-7000-8000-000000000000",
		InvestmentPortfolioID: "0198f1c2-0000-7000-8000-000000000001",
	})
	testutil.AssertValidationError(t, err, "asset does not exist")
	testutil.AssertValidationError(t, err, "investment portfolio does not exist")
}

func TestInvestmentAssetCommands_CreateDefaultsAssociationDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	portfolio := testutil.CreateTestPortfolio(t, db, user.ID)
	assetType := testutil.CreateTestAssetType(t, db)
	asset := testutil.CreateTestAsset(t, db, assetType.ID)

	cmds := commands.NewInvestmentAssetCommands(
		repository.NewInvestmentAssetRepository(db),
		repository.NewAssetRepository(db),
		repository.NewPortfolioRepository(db),
	)

	before := time.Now().UTC().Add(-time.Second)
	created, err := cmds.Create(user.ID, commands.SaveInvestmentAssetRequest{
		AssetID:               asset.ID,
		InvestmentPortfolioID: portfolio.ID,
	})
	testutil.AssertNoError(t, err)
	if created.AssociationDate.Before(before) {
		t.Errorf("expected the association date to default to now, got %s", created.AssociationDate)
	}
}

func TestInvestmentAssetCommands_CreateIntoForeignPortfolio(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	owner := testutil.CreateTestUser(t, db)
	intruder := testutil.CreateTestUser(t, db)
	portfolio := testutil.CreateTestPortfolio(t, db, owner.ID)
	assetType := testutil.CreateTestAssetType(t, db)
	asset := testutil.CreateTestAsset(t, db, assetType.ID)

	cmds := commands.NewInvestmentAssetCommands(
		repository.NewInvestmentAssetRepository(db),
		repository.NewAssetRepository(db),
		repository.NewPortfolioRepository(db),
	)

	_, err := cmds.Create(intruder.ID, commands.SaveInvestmentAssetRequest{
		AssetID:               asset.ID,
		InvestmentPortfolioID: portfolio.ID,
	})
	testutil.AssertAppError(t, err, "NOT_PORTFOLIO_OWNER")
}

func TestInvestmentAssetCommands_DeleteByNonOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	owner := testutil.CreateTestUser(t, db)
	intruder := testutil.CreateTestUser(t, db)
	portfolio := testutil.CreateTestPortfolio(t, db, owner.ID)
	assetType := testutil.CreateTestAssetType(t, db)
	asset := testutil.CreateTestAsset(t, db, assetType.ID)
	link := testutil.LinkAssetToPortfolio(t, db, portfolio.ID, asset.ID)

	cmds := commands.NewInvestmentAssetCommands(
		repository.NewInvestmentAssetRepository(db),
		repository.NewAssetRepository(db),
		repository.NewPortfolioRepository(db),
	)

	err := cmds.Delete(intruder.ID, link.ID)
	testutil.AssertAppError(t, err, "NOT_PORTFOLIO_OWNER")

	testutil.AssertNoError(t, cmds.Delete(owner.ID, link.ID))
}

func TestInvestmentAssetCommands_DeleteMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	cmds := commands.NewInvestmentAssetCommands(
		repository.NewInvestmentAssetRepository(db),
		repository.NewAssetRepository(db),
		repository.NewPortfolioRepository(db),
	)

	err := cmds.Delete(user.ID, "0198f1c2-0000-7000-8000-000000000000")
	testutil.AssertAppError(t, err, "INVESTMENT_ASSET_NOT_FOUND")
}
