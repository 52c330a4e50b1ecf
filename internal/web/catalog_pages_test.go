package web_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"investapp/internal/identity"
	"investapp/internal/mailer"
	"investapp/internal/middleware"
	"investapp/internal/models"
	"investapp/internal/repository"
	"investapp/internal/services"
	"investapp/internal/storage"
	"investapp/internal/testutil"
	"investapp/internal/web"
)

var webTestOnce sync.Once

// newWebRouter wires the full page stack over an in-memory database, the
// same way cmd/web does.
func newWebRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	webTestOnce.Do(func() { gin.SetMode(gin.TestMode) })
	testutil.SetTestConfig(t)

	images, err := storage.NewImageStore(t.TempDir())
	testutil.AssertNoError(t, err)

	h := web.NewHandlers(
		identity.NewAccountService(repository.NewUserRepository(db), nopSender{}),
		services.NewPortfolioService(repository.NewPortfolioRepository(db)),
		services.NewAssetService(repository.NewAssetRepository(db), repository.NewInvestmentAssetRepository(db)),
		services.NewAssetTypeService(repository.NewAssetTypeRepository(db)),
		services.NewAssetHistoryService(repository.NewAssetHistoryRepository(db)),
		services.NewInvestmentAssetService(repository.NewInvestmentAssetRepository(db)),
		images,
	)
	return web.NewRouter(h, "templates/*.html", t.TempDir())
}

type nopSender struct{}

func (nopSender) Send(msg mailer.Message) error { return nil }

// sessionCookie builds the web session cookie for the given role.
func sessionCookie(t *testing.T, role string) *http.Cookie {
	t.Helper()
	token, err := identity.GenerateAccessToken(&models.User{
		Base:     models.Base{ID: "test-admin"},
		Email:    "admin@example.com",
		Username: "admin",
		Role:     role,
	})
	testutil.AssertNoError(t, err)
	return &http.Cookie{Name: middleware.AuthCookieName, Value: token}
}

func doPage(router *gin.Engine, cookie *http.Cookie, method, path string, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAssetTypePages_CRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	router := newWebRouter(t, db)
	admin := sessionCookie(t, models.RoleAdmin)

	w := doPage(router, admin, http.MethodPost, "/admin/asset-types", url.Values{
		"name":        {"Cryptocurrency"},
		"description": {"Digital assets"},
	})
	if w.Code != http.StatusFound {
		t.Fatalf("expected a redirect after create, got %d", w.Code)
	}

	var created models.AssetType
	testutil.AssertNoError(t, db.First(&created, "name = ?", "Cryptocurrency").Error)

	w = doPage(router, admin, http.MethodGet, "/admin/asset-types", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Cryptocurrency") {
		t.Fatalf("expected the listing to show the new type, got %d", w.Code)
	}

	w = doPage(router, admin, http.MethodPost, "/admin/asset-types/"+created.ID, url.Values{
		"name":        {"Crypto"},
		"description": {"Digital assets"},
	})
	if w.Code != http.StatusFound {
		t.Fatalf("expected a redirect after update, got %d", w.Code)
	}
	var updated models.AssetType
	testutil.AssertNoError(t, db.First(&updated, "id = ?", created.ID).Error)
	if updated.Name != "Crypto" {
		t.Errorf("expected the rename to persist, got %q", updated.Name)
	}

	w = doPage(router, admin, http.MethodPost, "/admin/asset-types/"+created.ID+"/delete", nil)
	if w.Code != http.StatusFound {
		t.Fatalf("expected a redirect after delete, got %d", w.Code)
	}
	var count int64
	db.Model(&models.AssetType{}).Where("id = ?", created.ID).Count(&count)
	if count != 0 {
		t.Error("expected the asset type to be removed")
	}
}

func TestAssetTypePages_MissingFormName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	router := newWebRouter(t, db)
	admin := sessionCookie(t, models.RoleAdmin)

	w := doPage(router, admin, http.MethodPost, "/admin/asset-types", url.Values{"description": {"no name"}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a missing name, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "name is required") {
		t.Error("expected the form to re-render with the error")
	}
}

func TestAssetPages_CRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	router := newWebRouter(t, db)
	admin := sessionCookie(t, models.RoleAdmin)

	assetType := testutil.CreateTestAssetType(t, db)

	w := doPage(router, admin, http.MethodPost, "/admin/assets", url.Values{
		"name":          {"Bitcoin"},
		"symbol":        {"BTC"},
		"description":   {"Largest cryptocurrency"},
		"asset_type_id": {assetType.ID},
	})
	if w.Code != http.StatusFound {
		t.Fatalf("expected a redirect after create, got %d", w.Code)
	}

	var created models.Asset
	testutil.AssertNoError(t, db.First(&created, "symbol = ?", "BTC").Error)

	w = doPage(router, admin, http.MethodGet, "/admin/assets", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Bitcoin") {
		t.Fatalf("expected the listing to show the new asset, got %d", w.Code)
	}

	w = doPage(router, admin, http.MethodGet, "/admin/assets/"+created.ID+"/edit", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "BTC") {
		t.Fatalf("expected a pre-filled edit form, got %d", w.Code)
	}

	w = doPage(router, admin, http.MethodPost, "/admin/assets/"+created.ID+"/delete", nil)
	if w.Code != http.StatusFound {
		t.Fatalf("expected a redirect after delete, got %d", w.Code)
	}
}

func TestAssetHistoryPages_RecordEditDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	router := newWebRouter(t, db)
	admin := sessionCookie(t, models.RoleAdmin)

	assetType := testutil.CreateTestAssetType(t, db)
	asset := testutil.CreateTestAsset(t, db, assetType.ID)

	w := doPage(router, admin, http.MethodPost, "/admin/assets/"+asset.ID+"/histories", url.Values{
		"value":      {"42000.50"},
		"value_date": {"2026-08-30"},
	})
	if w.Code != http.StatusFound {
		t.Fatalf("expected a redirect after recording a value, got %d", w.Code)
	}

	var record models.AssetHistory
	testutil.AssertNoError(t, db.First(&record, "asset_id = ?", asset.ID).Error)

	w = doPage(router, admin, http.MethodGet, "/admin/assets/"+asset.ID+"/histories", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "2026-08-30") {
		t.Fatalf("expected the history page to show the record, got %d", w.Code)
	}

	w = doPage(router, admin, http.MethodPost, "/admin/asset-histories/"+record.ID, url.Values{
		"value":      {"43000"},
		"value_date": {"2026-08-30"},
	})
	if w.Code != http.StatusFound {
		t.Fatalf("expected a redirect after the edit, got %d", w.Code)
	}
	var edited models.AssetHistory
	testutil.AssertNoError(t, db.First(&edited, "id = ?", record.ID).Error)
	if !edited.Value.Equal(decimal.NewFromInt(43000)) {
		t.Errorf("expected the value to change to 43000, got %s", edited.Value)
	}

	w = doPage(router, admin, http.MethodPost, "/admin/asset-histories/"+record.ID+"/delete", nil)
	if w.Code != http.StatusFound {
		t.Fatalf("expected a redirect after delete, got %d", w.Code)
	}
	var count int64
	db.Model(&models.AssetHistory{}).Where("id = ?", record.ID).Count(&count)
	if count != 0 {
		t.Error("expected the record to be removed")
	}
}

func TestAssetHistoryPages_RejectsBadInput(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	router := newWebRouter(t, db)
	admin := sessionCookie(t, models.RoleAdmin)

	assetType := testutil.CreateTestAssetType(t, db)
	asset := testutil.CreateTestAsset(t, db, assetType.ID)

	w := doPage(router, admin, http.MethodPost, "/admin/assets/"+asset.ID+"/histories", url.Values{
		"value":      {"not-a-number"},
		"value_date": {"2026-08-30"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a bad value, got %d", w.Code)
	}

	w = doPage(router, admin, http.MethodGet, "/admin/assets/no-such-asset/histories", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for an unknown asset, got %d", w.Code)
	}
}

func TestCatalogPages_InvestorForbidden(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	router := newWebRouter(t, db)
	investor := sessionCookie(t, models.RoleInvestor)

	for _, path := range []string{"/admin/asset-types", "/admin/assets"} {
		w := doPage(router, investor, http.MethodGet, path, nil)
		if w.Code != http.StatusForbidden {
			t.Errorf("expected 403 for %s, got %d", path, w.Code)
		}
	}
}
