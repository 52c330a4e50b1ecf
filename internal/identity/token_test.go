package identity_test

import (
	"testing"

	"investapp/internal/identity"
	"investapp/internal/models"
	"investapp/internal/testutil"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	testutil.SetTestConfig(t)

	user := &models.User{
		Base:     models.Base{ID: "0198f1c2-1111-7000-8000-000000000000"},
		Username: "alice",
		Email:    "alice@example.com",
		Role:     models.RoleAdmin,
	}

	token, err := identity.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := identity.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != user.ID || claims.Username != "alice" || claims.Role != models.RoleAdmin {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	testutil.SetTestConfig(t)

	if _, err := identity.ParseAccessToken("not-a-jwt"); err == nil {
		t.Fatal("expected garbage to be rejected")
	}
}

func TestNewOpaqueToken(t *testing.T) {
	a := identity.NewOpaqueToken()
	b := identity.NewOpaqueToken()
	if len(a) != 64 {
		t.Errorf("expected 64 hex characters, got %d", len(a))
	}
	if a == b {
		t.Error("expected distinct tokens")
	}
}

func TestValidatePassword(t *testing.T) {
	if messages := identity.ValidatePassword("Str0ng!pass"); len(messages) != 0 {
		t.Errorf("expected no violations, got %v", messages)
	}
	if messages := identity.ValidatePassword("alllower1!"); len(messages) != 1 {
		t.Errorf("expected one violation, got %v", messages)
	}
	if messages := identity.ValidatePassword(""); len(messages) != 5 {
		t.Errorf("expected every requirement violated, got %v", messages)
	}
}
