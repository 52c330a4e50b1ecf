package commands_test

import (
	"testing"
	"time"

	"investapp/internal/commands"
	"investapp/internal/models"
	"investapp/internal/repository"
	"investapp/internal/testutil"
)

func TestAssetCommands_CreateRejectsUnknownType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	cmds := commands.NewAssetCommands(
		repository.NewAssetRepository(db),
		repository.NewAssetTypeRepository(db),
		repository.NewInvestmentAssetRepository(db),
	)

	_, err := cmds.Create(commands.SaveAssetRequest{
		Name:        "Bitcoin",
		Symbol:      "BTC",
		AssetTypeID: "0198f1c2-0000-7000-8000-000000000000",
	})
	testutil.AssertValidationError(t, err, "asset type does not exist")
}

func TestAssetCommands_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	assetType := testutil.CreateTestAssetType(t, db)
	cmds := commands.NewAssetCommands(
		repository.NewAssetRepository(db),
		repository.NewAssetTypeRepository(db),
		repository.NewInvestmentAssetRepository(db),
	)

	created, err := cmds.Create(commands.SaveAssetRequest{
		Name:        "Bitcoin",
		Description: "Digital currency",
		Symbol:      "BTC",
		AssetTypeID: assetType.ID,
	})
	testutil.AssertNoError(t, err)

	found, err := cmds.GetByID(created.ID)
	testutil.AssertNoError(t, err)
	if found.AssetTypeName != assetType.Name {
		t.Errorf("expected the type name to be loaded, got %q", found.AssetTypeName)
	}
}

func TestAssetCommands_GetByIDMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	cmds := commands.NewAssetCommands(
		repository.NewAssetRepository(db),
		repository.NewAssetTypeRepository(db),
		repository.NewInvestmentAssetRepository(db),
	)

	_, err := cmds.GetByID("0198f1c2-0000-7000-8000-000000000000")
	testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
}

func TestAssetCommands_GetAllByPortfolioID_EmptyPortfolio(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	portfolio := testutil.CreateTestPortfolio(t, db, user.ID)

	cmds := commands.NewAssetCommands(
		repository.NewAssetRepository(db),
		repository.NewAssetTypeRepository(db),
		repository.NewInvestmentAssetRepository(db),
	)

	assets, err := cmds.GetAllByPortfolioID(portfolio.ID, commands.PortfolioAssetsQuery{})
	testutil.AssertNoError(t, err)
	if len(assets) != 0 {
		t.Fatalf("expected an empty list for an empty portfolio, got %d", len(assets))
	}
}

func TestAssetCommands_GetAllByPortfolioID_FiltersAndOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	portfolio := testutil.CreateTestPortfolio(t, db, user.ID)
	crypto := testutil.CreateTestAssetType(t, db)
	stocks := testutil.CreateTestAssetType(t, db)

	now := time.Now()
	bitcoin := testutil.CreateTestAssetNamed(t, db, crypto.ID, "Bitcoin", "BTC")
	testutil.CreateTestAssetHistory(t, db, bitcoin.ID, 48000, now.AddDate(0, 0, -2))
	testutil.CreateTestAssetHistory(t, db, bitcoin.ID, 50000, now)

	apple := testutil.CreateTestAssetNamed(t, db, stocks.ID, "Apple", "AAPL")
	testutil.CreateTestAssetHistory(t, db, apple.ID, 180, now)

	zinc := testutil.CreateTestAssetNamed(t, db, stocks.ID, "Zinc Corp", "ZNC")

	for _, a := range []string{bitcoin.ID, apple.ID, zinc.ID} {
		testutil.LinkAssetToPortfolio(t, db, portfolio.ID, a)
	}
	// not linked, must never appear
	testutil.CreateTestAssetNamed(t, db, crypto.ID, "Ethereum", "ETH")

	cmds := commands.NewAssetCommands(
		repository.NewAssetRepository(db),
		repository.NewAssetTypeRepository(db),
		repository.NewInvestmentAssetRepository(db),
	)

	t.Run("default order is name ascending", func(t *testing.T) {
		assets, err := cmds.GetAllByPortfolioID(portfolio.ID, commands.PortfolioAssetsQuery{})
		testutil.AssertNoError(t, err)
		if len(assets) != 3 {
			t.Fatalf("expected 3 assets, got %d", len(assets))
		}
		if assets[0].Name != "Apple" || assets[1].Name != "Bitcoin" || assets[2].Name != "Zinc Corp" {
			t.Errorf("unexpected order: %s, %s, %s", assets[0].Name, assets[1].Name, assets[2].Name)
		}
	})

	t.Run("order by current value descending", func(t *testing.T) {
		assets, err := cmds.GetAllByPortfolioID(portfolio.ID, commands.PortfolioAssetsQuery{
			OrderBy: models.AssetOrderByCurrentValue,
		})
		testutil.AssertNoError(t, err)
		if assets[0].Name != "Bitcoin" {
			t.Fatalf("expected Bitcoin first, got %s", assets[0].Name)
		}
		if assets[0].CurrentValue.String() != "50000" {
			t.Errorf("expected the latest history value 50000, got %s", assets[0].CurrentValue)
		}
		// the asset with no history sorts last with a zero value
		if assets[2].Name != "Zinc Corp" || !assets[2].CurrentValue.IsZero() {
			t.Errorf("expected Zinc Corp last with zero value, got %s (%s)", assets[2].Name, assets[2].CurrentValue)
		}
	})

	t.Run("name substring filter", func(t *testing.T) {
		assets, err := cmds.GetAllByPortfolioID(portfolio.ID, commands.PortfolioAssetsQuery{
			AssetName: "coin",
		})
		testutil.AssertNoError(t, err)
		if len(assets) != 1 || assets[0].Name != "Bitcoin" {
			t.Fatalf("expected only Bitcoin, got %+v", assets)
		}
	})

	t.Run("type filter", func(t *testing.T) {
		assets, err := cmds.GetAllByPortfolioID(portfolio.ID, commands.PortfolioAssetsQuery{
			AssetTypeID: stocks.ID,
		})
		testutil.AssertNoError(t, err)
		if len(assets) != 2 {
			t.Fatalf("expected 2 stock assets, got %d", len(assets))
		}
	})
}
