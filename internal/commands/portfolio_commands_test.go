package commands_test

import (
	"testing"

	"investapp/internal/commands"
	"investapp/internal/pagination"
	"investapp/internal/repository"
	"investapp/internal/testutil"
)

func TestPortfolioCommands_CreateSetsOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	cmds := commands.NewPortfolioCommands(repository.NewPortfolioRepository(db))

	created, err := cmds.Create(user.ID, commands.SavePortfolioRequest{Name: "Retirement"})
	testutil.AssertNoError(t, err)
	if created.UserID != user.ID {
		t.Errorf("expected owner %s, got %s", user.ID, created.UserID)
	}
}

func TestPortfolioCommands_UpdateByNonOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	owner := testutil.CreateTestUser(t, db)
	intruder := testutil.CreateTestUser(t, db)
	portfolio := testutil.CreateTestPortfolio(t, db, owner.ID)

	cmds := commands.NewPortfolioCommands(repository.NewPortfolioRepository(db))

	_, err := cmds.Update(intruder.ID, portfolio.ID, commands.SavePortfolioRequest{Name: "Hijacked"})
	testutil.AssertAppError(t, err, "NOT_PORTFOLIO_OWNER")
}

func TestPortfolioCommands_DeleteByNonOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	owner := testutil.CreateTestUser(t, db)
	intruder := testutil.CreateTestUser(t, db)
	portfolio := testutil.CreateTestPortfolio(t, db, owner.ID)

	cmds := commands.NewPortfolioCommands(repository.NewPortfolioRepository(db))

	err := cmds.Delete(intruder.ID, portfolio.ID)
	testutil.AssertAppError(t, err, "NOT_PORTFOLIO_OWNER")

	// the portfolio is untouched
	if _, err := cmds.GetByID(owner.ID, portfolio.ID); err != nil {
		t.Fatalf("expected the portfolio to survive, got %v", err)
	}
}

func TestPortfolioCommands_GetByIDHidesOtherUsers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	owner := testutil.CreateTestUser(t, db)
	intruder := testutil.CreateTestUser(t, db)
	portfolio := testutil.CreateTestPortfolio(t, db, owner.ID)

	cmds := commands.NewPortfolioCommands(repository.NewPortfolioRepository(db))

	_, err := cmds.GetByID(intruder.ID, portfolio.ID)
	testutil.AssertAppError(t, err, "PORTFOLIO_NOT_FOUND")
}

func TestPortfolioCommands_GetAllByUserCountsAssets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	portfolio := testutil.CreateTestPortfolio(t, db, user.ID)
	testutil.CreateTestPortfolio(t, db, other.ID)

	assetType := testutil.CreateTestAssetType(t, db)
	asset := testutil.CreateTestAsset(t, db, assetType.ID)
	testutil.LinkAssetToPortfolio(t, db, portfolio.ID, asset.ID)

	cmds := commands.NewPortfolioCommands(repository.NewPortfolioRepository(db))

	page, err := cmds.GetAllByUser(user.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if len(page.Data) != 1 {
		t.Fatalf("expected only the caller's portfolio, got %d", len(page.Data))
	}
	if page.Data[0].AssetCount != 1 {
		t.Errorf("expected asset count 1, got %d", page.Data[0].AssetCount)
	}
}
