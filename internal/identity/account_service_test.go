package identity_test

import (
	"strings"
	"testing"
	"time"

	"investapp/internal/identity"
	"investapp/internal/mailer"
	"investapp/internal/models"
	"investapp/internal/repository"
	"investapp/internal/testutil"

	"gorm.io/gorm"
)

// fakeSender records outbound messages instead of dialing SMTP.
type fakeSender struct {
	messages []mailer.Message
}

func (f *fakeSender) Send(msg mailer.Message) error {
	f.messages = append(f.messages, msg)
	return nil
}

func setupAccountService(t *testing.T, db *gorm.DB) (*identity.AccountService, *fakeSender) {
	t.Helper()
	testutil.SetTestConfig(t)
	sender := &fakeSender{}
	return identity.NewAccountService(repository.NewUserRepository(db), sender), sender
}

func TestAccountService_Register(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc, sender := setupAccountService(t, db)

	user, err := svc.Register(identity.RegisterRequest{
		Email:    "Alice@Example.com",
		Username: "alice",
		Password: "Str0ng!pass",
	}, "", true)
	testutil.AssertNoError(t, err)

	if user.Email != "alice@example.com" {
		t.Errorf("expected the email to be lower-cased, got %q", user.Email)
	}
	if user.Role != models.RoleInvestor {
		t.Errorf("expected the default Investor role, got %q", user.Role)
	}
	if user.EmailConfirmed {
		t.Error("expected a fresh account to be unconfirmed")
	}
	if len(sender.messages) != 1 {
		t.Fatalf("expected one confirmation email, got %d", len(sender.messages))
	}
	if sender.messages[0].To[0] != "alice@example.com" {
		t.Errorf("confirmation email sent to %q", sender.messages[0].To[0])
	}
}

func TestAccountService_RegisterConfirmedSkipsEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc, sender := setupAccountService(t, db)

	user, err := svc.Register(identity.RegisterRequest{
		Email:     "staff@example.com",
		Username:  "staff",
		Password:  "Str0ng!pass",
		Role:      models.RoleAdmin,
		Confirmed: true,
	}, "", true)
	testutil.AssertNoError(t, err)

	if !user.EmailConfirmed {
		t.Error("expected a pre-confirmed account")
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("expected the requested role, got %q", user.Role)
	}
	if len(sender.messages) != 0 {
		t.Errorf("expected no confirmation email, got %d", len(sender.messages))
	}
}

func TestAccountService_RegisterDuplicates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc, _ := setupAccountService(t, db)

	existing := testutil.CreateTestUser(t, db)

	_, err := svc.Register(identity.RegisterRequest{
		Email:    existing.Email,
		Username: existing.Username,
		Password: "Str0ng!pass",
	}, "", true)
	testutil.AssertValidationError(t, err, "already taken")
}

func TestAccountService_RegisterWeakPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc, _ := setupAccountService(t, db)

	_, err := svc.Register(identity.RegisterRequest{
		Email:    "bob@example.com",
		Username: "bob",
		Password: "short",
	}, "", true)
	testutil.AssertValidationError(t, err, "password must be at least 8 characters long")
	testutil.AssertValidationError(t, err, "password must contain an upper-case letter")
}

func TestAccountService_ConfirmEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc, _ := setupAccountService(t, db)

	user := testutil.CreateUnconfirmedUser(t, db)

	if err := svc.ConfirmEmail(user.ID, "wrong-token"); err == nil {
		t.Fatal("expected a wrong token to be rejected")
	}

	testutil.AssertNoError(t, svc.ConfirmEmail(user.ID, user.ConfirmationToken))

	confirmed, err := svc.GetByID(user.ID)
	testutil.AssertNoError(t, err)
	if !confirmed.EmailConfirmed {
		t.Error("expected the account to be confirmed")
	}
}

func TestAccountService_AuthenticateUnconfirmed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc, _ := setupAccountService(t, db)

	user := testutil.CreateUnconfirmedUser(t, db)

	_, err := svc.Authenticate(user.Username, testutil.TestPassword)
	testutil.AssertAppError(t, err, "ACCOUNT_NOT_ACTIVE")
}

func TestAccountService_AuthenticateWrongPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc, _ := setupAccountService(t, db)

	user := testutil.CreateTestUser(t, db)

	_, err := svc.Authenticate(user.Username, "not-the-password")
	testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")

	_, err = svc.Authenticate("nobody", testutil.TestPassword)
	testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
}

func TestAccountService_LockoutAfterRepeatedFailures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc, _ := setupAccountService(t, db)

	user := testutil.CreateTestUser(t, db)

	for i := 0; i < 5; i++ {
		_, err := svc.Authenticate(user.Username, "not-the-password")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	}

	// even the correct password is rejected while locked
	_, err := svc.Authenticate(user.Username, testutil.TestPassword)
	testutil.AssertAppError(t, err, "ACCOUNT_LOCKED")
}

func TestAccountService_AuthenticateSuccessResetsCounter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc, _ := setupAccountService(t, db)

	user := testutil.CreateTestUser(t, db)

	for i := 0; i < 3; i++ {
		_, _ = svc.Authenticate(user.Username, "not-the-password")
	}

	authed, err := svc.Authenticate(user.Username, testutil.TestPassword)
	testutil.AssertNoError(t, err)
	if authed.LastLoginAt == nil {
		t.Error("expected the last login time to be stamped")
	}

	var stored models.User
	testutil.AssertNoError(t, db.First(&stored, "id = ?", user.ID).Error)
	if stored.FailedLoginAttempts != 0 {
		t.Errorf("expected the failure counter to reset, got %d", stored.FailedLoginAttempts)
	}
}

func TestAccountService_PasswordResetFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc, sender := setupAccountService(t, db)

	user := testutil.CreateTestUser(t, db)

	testutil.AssertNoError(t, svc.ForgotPassword(user.Username, "", true))
	if len(sender.messages) != 1 {
		t.Fatalf("expected one reset email, got %d", len(sender.messages))
	}

	var stored models.User
	testutil.AssertNoError(t, db.First(&stored, "id = ?", user.ID).Error)
	if stored.ResetToken == "" || stored.ResetTokenExpiresAt == nil {
		t.Fatal("expected a reset token with an expiry")
	}
	if !strings.Contains(sender.messages[0].HTMLBody, stored.ResetToken) {
		t.Error("expected the email to carry the reset token")
	}

	if err := svc.ResetPassword(user.ID, "bogus", "N3w!passw0rd"); err == nil {
		t.Fatal("expected a bogus token to be rejected")
	}

	testutil.AssertNoError(t, svc.ResetPassword(user.ID, stored.ResetToken, "N3w!passw0rd"))

	// the old password no longer works, the new one does
	_, err := svc.Authenticate(user.Username, testutil.TestPassword)
	testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	_, err = svc.Authenticate(user.Username, "N3w!passw0rd")
	testutil.AssertNoError(t, err)
}

func TestAccountService_ResetTokenExpires(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc, _ := setupAccountService(t, db)

	user := testutil.CreateTestUser(t, db)
	expired := time.Now().Add(-time.Hour)
	user.ResetToken = "stale-token"
	user.ResetTokenExpiresAt = &expired
	testutil.AssertNoError(t, db.Save(user).Error)

	err := svc.ResetPassword(user.ID, "stale-token", "N3w!passw0rd")
	testutil.AssertAppError(t, err, "INVALID_TOKEN")
}

func TestAccountService_UpdateUserEmailChangeDropsConfirmation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc, sender := setupAccountService(t, db)

	user := testutil.CreateTestUser(t, db)

	updated, err := svc.UpdateUser(user.ID, identity.UpdateUserRequest{
		Email:    "new-address@example.com",
		Username: user.Username,
	}, "", true)
	testutil.AssertNoError(t, err)

	if updated.EmailConfirmed {
		t.Error("expected the confirmation flag to drop after an email change")
	}
	if len(sender.messages) != 1 {
		t.Errorf("expected a re-confirmation email, got %d messages", len(sender.messages))
	}
}

func TestAccountService_UpdateUserRejectsTakenUsername(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc, _ := setupAccountService(t, db)

	a := testutil.CreateTestUser(t, db)
	b := testutil.CreateTestUser(t, db)

	_, err := svc.UpdateUser(a.ID, identity.UpdateUserRequest{
		Email:    a.Email,
		Username: b.Username,
	}, "", true)
	testutil.AssertValidationError(t, err, "already taken")
}

func TestAccountService_DeleteUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc, _ := setupAccountService(t, db)

	user := testutil.CreateTestUser(t, db)
	testutil.AssertNoError(t, svc.DeleteUser(user.ID))

	err := svc.DeleteUser(user.ID)
	testutil.AssertAppError(t, err, "USER_NOT_FOUND")
}
