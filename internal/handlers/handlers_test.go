package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"investapp/internal/commands"
	"investapp/internal/handlers"
	"investapp/internal/identity"
	"investapp/internal/mailer"
	"investapp/internal/middleware"
	"investapp/internal/models"
	"investapp/internal/repository"
	"investapp/internal/testutil"
	"investapp/internal/validator"
)

var setupOnce sync.Once

type fakeSender struct {
	messages []mailer.Message
}

func (f *fakeSender) Send(msg mailer.Message) error {
	f.messages = append(f.messages, msg)
	return nil
}

// injectUser stands in for the JWT middleware and places the claims of a
// fixed user on the context.
func injectUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, user.ID)
		c.Set(middleware.ContextUsername, user.Username)
		c.Set(middleware.ContextEmail, user.Email)
		c.Set(middleware.ContextRole, user.Role)
		c.Next()
	}
}

func setupTest(t *testing.T) {
	t.Helper()
	setupOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		validator.Register()
	})
	testutil.SetTestConfig(t)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, w)
	errObj, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected an error envelope, got %q", w.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

func newAuthRoutes(db *gorm.DB) (*gin.RouterGroup, *gin.Engine, *handlers.AuthHandler) {
	router := gin.New()
	sender := &fakeSender{}
	accounts := identity.NewAccountService(repository.NewUserRepository(db), sender)
	handler := handlers.NewAuthHandler(accounts)
	group := router.Group("/api/v1")
	return group, router, handler
}

func TestAuthHandler_RegisterAndLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	setupTest(t)

	group, router, handler := newAuthRoutes(db)
	group.POST("/auth/register", handler.Register)
	group.POST("/auth/login", handler.Login)
	group.POST("/auth/confirm-email", handler.ConfirmEmail)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", gin.H{
		"email":    "alice@example.com",
		"username": "alice",
		"password": "Str0ng!pass",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	userObj := decodeBody(t, w)["user"].(map[string]interface{})
	userID := userObj["id"].(string)

	// unconfirmed accounts cannot log in
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "alice",
		"password": "Str0ng!pass",
	})
	if w.Code != http.StatusUnauthorized || errorCode(t, w) != "ACCOUNT_NOT_ACTIVE" {
		t.Fatalf("expected 401 ACCOUNT_NOT_ACTIVE, got %d: %s", w.Code, w.Body.String())
	}

	var stored models.User
	if err := db.First(&stored, "id = ?", userID).Error; err != nil {
		t.Fatalf("failed to load registered user: %v", err)
	}
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/confirm-email", gin.H{
		"user_id": userID,
		"token":   stored.ConfirmationToken,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "alice",
		"password": "Str0ng!pass",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if token, _ := decodeBody(t, w)["access_token"].(string); token == "" {
		t.Error("expected an access token in the response")
	}
}

func TestAuthHandler_RegisterIgnoresRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	setupTest(t)

	group, router, handler := newAuthRoutes(db)
	group.POST("/auth/register", handler.Register)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", gin.H{
		"email":    "mallory@example.com",
		"username": "mallory",
		"password": "Str0ng!pass",
		"role":     models.RoleSuperAdmin,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	userObj := decodeBody(t, w)["user"].(map[string]interface{})
	if userObj["role"] != models.RoleInvestor {
		t.Errorf("expected the Investor role regardless of the request, got %v", userObj["role"])
	}
}

func TestAuthHandler_LoginLockout(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	setupTest(t)

	user := testutil.CreateTestUser(t, db)
	group, router, handler := newAuthRoutes(db)
	group.POST("/auth/login", handler.Login)

	for i := 0; i < 5; i++ {
		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
			"username": user.Username,
			"password": "wrong",
		})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 on attempt %d, got %d", i+1, w.Code)
		}
	}

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": user.Username,
		"password": testutil.TestPassword,
	})
	if w.Code != http.StatusLocked || errorCode(t, w) != "ACCOUNT_LOCKED" {
		t.Fatalf("expected 423 ACCOUNT_LOCKED, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAssetTypeHandler_V2ListReturnsNoContentWhenEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	setupTest(t)
	router := gin.New()

	handler := handlers.NewAssetTypeHandler(
		commands.NewAssetTypeCommands(repository.NewAssetTypeRepository(db)),
	)
	router.GET("/api/v2/asset-types", handler.GetAssetTypesWithAssets)

	w := doJSON(t, router, http.MethodGet, "/api/v2/asset-types", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}

	assetType := testutil.CreateTestAssetType(t, db)
	testutil.CreateTestAsset(t, db, assetType.ID)

	w = doJSON(t, router, http.MethodGet, "/api/v2/asset-types", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	types, ok := decodeBody(t, w)["asset_types"].([]interface{})
	if !ok || len(types) != 1 {
		t.Fatalf("expected one asset type, got %s", w.Body.String())
	}
}

func TestPortfolioHandler_Ownership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	setupTest(t)
	router := gin.New()

	owner := testutil.CreateTestUser(t, db)
	intruder := testutil.CreateTestUser(t, db)
	portfolio := testutil.CreateTestPortfolio(t, db, owner.ID)

	handler := handlers.NewPortfolioHandler(
		commands.NewPortfolioCommands(repository.NewPortfolioRepository(db)),
	)
	group := router.Group("/api/v1", injectUser(intruder))
	group.GET("/portfolios/:id", handler.GetPortfolioByID)
	group.PUT("/portfolios/:id", handler.UpdatePortfolio)

	w := doJSON(t, router, http.MethodGet, "/api/v1/portfolios/"+portfolio.ID, nil)
	if w.Code != http.StatusNotFound || errorCode(t, w) != "PORTFOLIO_NOT_FOUND" {
		t.Fatalf("expected 404 PORTFOLIO_NOT_FOUND, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPut, "/api/v1/portfolios/"+portfolio.ID, gin.H{"name": "Hijacked"})
	if w.Code != http.StatusBadRequest || errorCode(t, w) != "NOT_PORTFOLIO_OWNER" {
		t.Fatalf("expected 400 NOT_PORTFOLIO_OWNER, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPortfolioHandler_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	setupTest(t)
	router := gin.New()

	user := testutil.CreateTestUser(t, db)
	handler := handlers.NewPortfolioHandler(
		commands.NewPortfolioCommands(repository.NewPortfolioRepository(db)),
	)
	group := router.Group("/api/v1", injectUser(user))
	group.POST("/portfolios", handler.CreatePortfolio)
	group.GET("/portfolios", handler.GetPortfolios)

	w := doJSON(t, router, http.MethodPost, "/api/v1/portfolios", gin.H{"name": "Retirement"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/portfolios", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data, ok := decodeBody(t, w)["data"].([]interface{})
	if !ok || len(data) != 1 {
		t.Fatalf("expected one portfolio, got %s", w.Body.String())
	}
}

func TestHandlers_InvalidPathID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	setupTest(t)
	router := gin.New()

	user := testutil.CreateTestUser(t, db)
	handler := handlers.NewPortfolioHandler(
		commands.NewPortfolioCommands(repository.NewPortfolioRepository(db)),
	)
	router.GET("/api/v1/portfolios/:id", injectUser(user), handler.GetPortfolioByID)

	w := doJSON(t, router, http.MethodGet, "/api/v1/portfolios/not-a-uuid", nil)
	if w.Code != http.StatusBadRequest || errorCode(t, w) != "INVALID_INPUT" {
		t.Fatalf("expected 400 INVALID_INPUT, got %d: %s", w.Code, w.Body.String())
	}
}

func TestHandlers_MissingUserContext(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	setupTest(t)
	router := gin.New()

	handler := handlers.NewPortfolioHandler(
		commands.NewPortfolioCommands(repository.NewPortfolioRepository(db)),
	)
	router.GET("/api/v1/portfolios", handler.GetPortfolios)

	w := doJSON(t, router, http.MethodGet, "/api/v1/portfolios", nil)
	if w.Code != http.StatusUnauthorized || errorCode(t, w) != "UNAUTHORIZED" {
		t.Fatalf("expected 401 UNAUTHORIZED, got %d: %s", w.Code, w.Body.String())
	}
}
