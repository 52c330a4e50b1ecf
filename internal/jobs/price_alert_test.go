package jobs_test

import (
	"strings"
	"testing"
	"time"

	"investapp/internal/jobs"
	"investapp/internal/mailer"
	"investapp/internal/models"
	"investapp/internal/repository"
	"investapp/internal/services"
	"investapp/internal/testutil"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type fakeSender struct {
	messages []mailer.Message
}

func (f *fakeSender) Send(msg mailer.Message) error {
	f.messages = append(f.messages, msg)
	return nil
}

func newPriceAlertJob(db *gorm.DB, sender mailer.Sender) *jobs.PriceAlertJob {
	assetService := services.NewAssetService(
		repository.NewAssetRepository(db),
		repository.NewInvestmentAssetRepository(db),
	)
	return jobs.NewPriceAlertJob(assetService, repository.NewUserRepository(db), sender)
}

func TestClassifyPriceChange(t *testing.T) {
	now := time.Now()
	history := func(value string, daysAgo int) models.AssetHistory {
		v, _ := decimal.NewFromString(value)
		return models.AssetHistory{Value: v, ValueDate: now.AddDate(0, 0, -daysAgo)}
	}

	t.Run("fewer than two entries", func(t *testing.T) {
		asset := &models.Asset{Name: "Gold", AssetHistories: []models.AssetHistory{history("100", 0)}}
		if change := jobs.ClassifyPriceChange(asset, now); change != nil {
			t.Fatalf("expected nil, got %+v", change)
		}
	})

	t.Run("increased", func(t *testing.T) {
		asset := &models.Asset{Name: "Gold", Symbol: "XAU", AssetHistories: []models.AssetHistory{
			history("100", 1),
			history("110", 0),
		}}
		change := jobs.ClassifyPriceChange(asset, now)
		if change == nil || change.State != jobs.PriceIncreased {
			t.Fatalf("expected Increased, got %+v", change)
		}
		if change.Previous.String() != "100" || change.Current.String() != "110" {
			t.Errorf("unexpected values: %s -> %s", change.Previous, change.Current)
		}
	})

	t.Run("decreased", func(t *testing.T) {
		asset := &models.Asset{Name: "Gold", AssetHistories: []models.AssetHistory{
			history("110", 1),
			history("100", 0),
		}}
		change := jobs.ClassifyPriceChange(asset, now)
		if change == nil || change.State != jobs.PriceDecreased {
			t.Fatalf("expected Decreased, got %+v", change)
		}
	})

	t.Run("unchanged", func(t *testing.T) {
		asset := &models.Asset{Name: "Gold", AssetHistories: []models.AssetHistory{
			history("100", 1),
			history("100", 0),
		}}
		change := jobs.ClassifyPriceChange(asset, now)
		if change == nil || change.State != jobs.PriceUnchanged {
			t.Fatalf("expected No change, got %+v", change)
		}
	})

	t.Run("picks the two most recent entries", func(t *testing.T) {
		asset := &models.Asset{Name: "Gold", AssetHistories: []models.AssetHistory{
			history("50", 10),
			history("110", 0),
			history("100", 1),
		}}
		change := jobs.ClassifyPriceChange(asset, now)
		if change.Previous.String() != "100" || change.Current.String() != "110" {
			t.Errorf("unexpected values: %s -> %s", change.Previous, change.Current)
		}
	})

	t.Run("latest entry not from the given day", func(t *testing.T) {
		asset := &models.Asset{Name: "Gold", AssetHistories: []models.AssetHistory{
			history("100", 3),
			history("110", 2),
		}}
		if change := jobs.ClassifyPriceChange(asset, now); change != nil {
			t.Fatalf("expected stale assets to be skipped, got %+v", change)
		}
	})
}

func TestPriceAlertJob_SendsOneAggregateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	confirmed := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	testutil.CreateUnconfirmedUser(t, db)

	assetType := testutil.CreateTestAssetType(t, db)
	now := time.Now()

	up := testutil.CreateTestAssetNamed(t, db, assetType.ID, "Bitcoin", "BTC")
	testutil.CreateTestAssetHistory(t, db, up.ID, 48000, now.AddDate(0, 0, -1))
	testutil.CreateTestAssetHistory(t, db, up.ID, 50000, now)

	flat := testutil.CreateTestAssetNamed(t, db, assetType.ID, "Stablecoin", "USDC")
	testutil.CreateTestAssetHistory(t, db, flat.ID, 1, now.AddDate(0, 0, -1))
	testutil.CreateTestAssetHistory(t, db, flat.ID, 1, now)

	// a single history entry gives nothing to compare
	sparse := testutil.CreateTestAssetNamed(t, db, assetType.ID, "Gold", "XAU")
	testutil.CreateTestAssetHistory(t, db, sparse.ID, 1900, now)

	sender := &fakeSender{}
	job := newPriceAlertJob(db, sender)

	if err := job.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.messages) != 1 {
		t.Fatalf("expected one aggregate email, got %d", len(sender.messages))
	}

	msg := sender.messages[0]
	if len(msg.To) != 2 {
		t.Errorf("expected the 2 confirmed recipients, got %v", msg.To)
	}
	for _, email := range []string{confirmed.Email, other.Email} {
		found := false
		for _, to := range msg.To {
			if to == email {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %s among the recipients", email)
		}
	}
	if !strings.Contains(msg.HTMLBody, "Bitcoin") {
		t.Error("expected the moved asset in the body")
	}
	if strings.Contains(msg.HTMLBody, "Stablecoin") || strings.Contains(msg.HTMLBody, "Gold") {
		t.Errorf("unchanged and sparse assets must be left out, body: %s", msg.HTMLBody)
	}
}

func TestPriceAlertJob_NoChangesNoEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	testutil.CreateTestUser(t, db)
	assetType := testutil.CreateTestAssetType(t, db)
	asset := testutil.CreateTestAsset(t, db, assetType.ID)
	now := time.Now()
	testutil.CreateTestAssetHistory(t, db, asset.ID, 10, now.AddDate(0, 0, -1))
	testutil.CreateTestAssetHistory(t, db, asset.ID, 10, now)

	sender := &fakeSender{}
	job := newPriceAlertJob(db, sender)

	if err := job.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.messages) != 0 {
		t.Fatalf("expected no email, got %d", len(sender.messages))
	}
}

func TestPriceAlertJob_NoConfirmedUsersNoEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	testutil.CreateUnconfirmedUser(t, db)
	assetType := testutil.CreateTestAssetType(t, db)
	asset := testutil.CreateTestAsset(t, db, assetType.ID)
	now := time.Now()
	testutil.CreateTestAssetHistory(t, db, asset.ID, 10, now.AddDate(0, 0, -1))
	testutil.CreateTestAssetHistory(t, db, asset.ID, 20, now)

	sender := &fakeSender{}
	job := newPriceAlertJob(db, sender)

	if err := job.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.messages) != 0 {
		t.Fatalf("expected no email, got %d", len(sender.messages))
	}
}
