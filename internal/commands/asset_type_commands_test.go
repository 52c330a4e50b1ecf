package commands_test

import (
	"testing"

	"investapp/internal/commands"
	"investapp/internal/pagination"
	"investapp/internal/repository"
	"investapp/internal/testutil"
)

func TestAssetTypeCommands_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	cmds := commands.NewAssetTypeCommands(repository.NewAssetTypeRepository(db))

	created, err := cmds.Create(commands.SaveAssetTypeRequest{Name: "Stocks", Description: "Listed equity"})
	testutil.AssertNoError(t, err)
	if created.ID == "" || created.Name != "Stocks" {
		t.Fatalf("unexpected result: %+v", created)
	}
}

func TestAssetTypeCommands_CreateRequiresName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	cmds := commands.NewAssetTypeCommands(repository.NewAssetTypeRepository(db))

	_, err := cmds.Create(commands.SaveAssetTypeRequest{Name: ""})
	testutil.AssertValidationError(t, err, "name is required")
}

func TestAssetTypeCommands_UpdateMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	cmds := commands.NewAssetTypeCommands(repository.NewAssetTypeRepository(db))

	_, err := cmds.Update("0198f1c2-0000-7000-8000-000000000000", commands.SaveAssetTypeRequest{Name: "Bonds"})
	testutil.AssertAppError(t, err, "ASSET_TYPE_NOT_FOUND")
}

func TestAssetTypeCommands_DeleteMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	cmds := commands.NewAssetTypeCommands(repository.NewAssetTypeRepository(db))

	err := cmds.Delete("0198f1c2-0000-7000-8000-000000000000")
	testutil.AssertAppError(t, err, "ASSET_TYPE_NOT_FOUND")
}

func TestAssetTypeCommands_GetAllPaginates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	for i := 0; i < 3; i++ {
		testutil.CreateTestAssetType(t, db)
	}

	cmds := commands.NewAssetTypeCommands(repository.NewAssetTypeRepository(db))

	page, err := cmds.GetAll(pagination.PageRequest{Page: 1, PageSize: 2})
	testutil.AssertNoError(t, err)
	if page.TotalItems != 3 {
		t.Errorf("expected 3 total items, got %d", page.TotalItems)
	}
	if len(page.Data) != 2 {
		t.Errorf("expected 2 items on the page, got %d", len(page.Data))
	}
	if page.TotalPages != 2 {
		t.Errorf("expected 2 total pages, got %d", page.TotalPages)
	}
}

func TestAssetTypeCommands_GetAllWithAssets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	assetType := testutil.CreateTestAssetType(t, db)
	testutil.CreateTestAsset(t, db, assetType.ID)
	testutil.CreateTestAsset(t, db, assetType.ID)
	empty := testutil.CreateTestAssetType(t, db)

	cmds := commands.NewAssetTypeCommands(repository.NewAssetTypeRepository(db))

	result, err := cmds.GetAllWithAssets()
	testutil.AssertNoError(t, err)
	if len(result) != 2 {
		t.Fatalf("expected 2 asset types, got %d", len(result))
	}
	for _, at := range result {
		switch at.ID {
		case assetType.ID:
			if len(at.Assets) != 2 {
				t.Errorf("expected 2 nested assets, got %d", len(at.Assets))
			}
		case empty.ID:
			if len(at.Assets) != 0 {
				t.Errorf("expected no nested assets, got %d", len(at.Assets))
			}
		}
	}
}
