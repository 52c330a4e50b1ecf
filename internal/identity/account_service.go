// Package identity implements registration, authentication, lockout,
// email confirmation, password reset, and JWT issuance.
package identity

import (
	"fmt"
	"strings"
	"time"

	"investapp/internal/config"
	"investapp/internal/dto"
	apperrors "investapp/internal/errors"
	"investapp/internal/logger"
	"investapp/internal/mailer"
	"investapp/internal/models"
	"investapp/internal/pagination"
	"investapp/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// RegisterRequest carries the fields for creating an account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=128"`
	Name     string `json:"name" binding:"max=100"`
	LastName string `json:"last_name" binding:"max=100"`
	Phone    string `json:"phone" binding:"max=30"`
	Role     string `json:"role" binding:"omitempty,role"`
	// Confirmed skips email confirmation. Honored only on admin-side
	// creation; the self-registration endpoint clears it.
	Confirmed bool `json:"confirmed"`
}

// UpdateUserRequest carries the fields an admin may change on a user.
type UpdateUserRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"omitempty,max=128"`
	Name     string `json:"name" binding:"max=100"`
	LastName string `json:"last_name" binding:"max=100"`
	Phone    string `json:"phone" binding:"max=30"`
	Role     string `json:"role" binding:"omitempty,role"`
}

// AccountService implements the identity use cases over the user table.
type AccountService struct {
	users  *repository.UserRepository
	sender mailer.Sender
}

// NewAccountService creates an AccountService.
func NewAccountService(users *repository.UserRepository, sender mailer.Sender) *AccountService {
	return &AccountService{users: users, sender: sender}
}

// Register creates a new unconfirmed account and sends the confirmation
// email. Web callers receive a confirmation link built from origin; API
// callers receive the raw token instead.
func (s *AccountService) Register(req RegisterRequest, origin string, isAPI bool) (*dto.UserDTO, error) {
	var messages []string

	existing, err := s.users.GetByUsername(req.Username)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if existing != nil {
		messages = append(messages, fmt.Sprintf("username %q is already taken", req.Username))
	}

	existing, err = s.users.GetByEmail(strings.ToLower(req.Email))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if existing != nil {
		messages = append(messages, fmt.Sprintf("email %q is already taken", req.Email))
	}

	messages = append(messages, ValidatePassword(req.Password)...)
	if len(messages) > 0 {
		return nil, &apperrors.ValidationError{Messages: messages}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleInvestor
	}

	user := &models.User{
		Email:          strings.ToLower(req.Email),
		Username:       req.Username,
		Password:       string(hashed),
		Name:           req.Name,
		LastName:       req.LastName,
		Phone:          req.Phone,
		Role:           role,
		EmailConfirmed: req.Confirmed,
	}
	if !req.Confirmed {
		user.ConfirmationToken = NewOpaqueToken()
	}
	created, err := s.users.Add(user)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if !req.Confirmed {
		s.sendConfirmation(created, origin, isAPI)
	}

	result := dto.UserToDTO(created)
	return &result, nil
}

// ConfirmEmail activates the account when the token matches.
func (s *AccountService) ConfirmEmail(userID, token string) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if user == nil {
		return apperrors.ErrUserNotFound
	}
	if user.EmailConfirmed {
		return nil
	}
	if token == "" || user.ConfirmationToken != token {
		return apperrors.ErrInvalidToken
	}

	user.EmailConfirmed = true
	user.ConfirmationToken = ""
	if _, err := s.users.Update(user.ID, user); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Authenticate verifies credentials and lockout state. On success the
// failed-attempt counter resets and the last login time is stamped; the
// caller decides whether to mint a JWT or set a cookie.
func (s *AccountService) Authenticate(username, password string) (*models.User, error) {
	cfg := config.Get()
	now := time.Now()

	user, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if user == nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.EmailConfirmed {
		return nil, apperrors.WithMessage(apperrors.ErrAccountNotActive,
			fmt.Sprintf("account %q is not active, check your email for the confirmation message", username))
	}

	if user.IsLocked(now) {
		return nil, apperrors.ErrAccountLocked
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		s.recordFailedAttempt(user, cfg, now)
		return nil, apperrors.ErrInvalidCredentials
	}

	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	if _, err := s.users.Update(user.ID, user); err != nil {
		logger.Get().Errorw("login bookkeeping failed", "user_id", user.ID, "error", err.Error())
	}
	if err := s.users.TouchLastLogin(user.ID, now); err != nil {
		logger.Get().Errorw("last login stamp failed", "user_id", user.ID, "error", err.Error())
	}
	user.LastLoginAt = &now

	return user, nil
}

// ForgotPassword issues a reset token and emails it. Unknown accounts are
// reported so the caller can surface the error, matching the original
// behavior.
func (s *AccountService) ForgotPassword(username, origin string, isAPI bool) error {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if user == nil {
		return apperrors.ErrUserNotFound
	}

	expiry := time.Now().Add(config.Get().IdentityTokenLifespan)
	user.ResetToken = NewOpaqueToken()
	user.ResetTokenExpiresAt = &expiry
	if _, err := s.users.Update(user.ID, user); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var body string
	if isAPI {
		body = fmt.Sprintf("Use this token to reset your password: %s", user.ResetToken)
	} else {
		body = fmt.Sprintf("Reset your password visiting this URL %s/reset-password?user=%s&token=%s",
			origin, user.ID, user.ResetToken)
	}
	if err := s.sender.Send(mailer.Message{
		To:       []string{user.Email},
		Subject:  "Reset password",
		HTMLBody: body,
	}); err != nil {
		logger.Get().Errorw("reset email failed", "user_id", user.ID, "error", err.Error())
	}
	return nil
}

// ResetPassword consumes a reset token and sets the new password.
func (s *AccountService) ResetPassword(userID, token, newPassword string) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if user == nil {
		return apperrors.ErrUserNotFound
	}
	if token == "" || user.ResetToken != token ||
		user.ResetTokenExpiresAt == nil || time.Now().After(*user.ResetTokenExpiresAt) {
		return apperrors.ErrInvalidToken
	}

	if messages := ValidatePassword(newPassword); len(messages) > 0 {
		return &apperrors.ValidationError{Messages: messages}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user.Password = string(hashed)
	user.ResetToken = ""
	user.ResetTokenExpiresAt = nil
	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	if _, err := s.users.Update(user.ID, user); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetByID fetches one user.
func (s *AccountService) GetByID(id string) (*dto.UserDTO, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	result := dto.UserToDTO(user)
	return &result, nil
}

// GetByUsername fetches one user by username.
func (s *AccountService) GetByUsername(username string) (*dto.UserDTO, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	result := dto.UserToDTO(user)
	return &result, nil
}

// GetAll lists users, paginated. Admin use.
func (s *AccountService) GetAll(page pagination.PageRequest) (*pagination.PageResponse[dto.UserDTO], error) {
	result, err := pagination.List[models.User](s.users.Query(), page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	dtos := make([]dto.UserDTO, 0, len(result.Data))
	for i := range result.Data {
		dtos = append(dtos, dto.UserToDTO(&result.Data[i]))
	}
	resp := pagination.NewPageResponse(dtos, result.Page, result.PageSize, result.TotalItems)
	return &resp, nil
}

// UpdateUser edits a user's profile fields. Changing the email drops the
// confirmation flag and re-sends the confirmation message. Admin use.
func (s *AccountService) UpdateUser(id string, req UpdateUserRequest, origin string, isAPI bool) (*dto.UserDTO, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	var messages []string

	other, err := s.users.GetByUsername(req.Username)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if other != nil && other.ID != id {
		messages = append(messages, fmt.Sprintf("username %q is already taken", req.Username))
	}

	other, err = s.users.GetByEmail(strings.ToLower(req.Email))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if other != nil && other.ID != id {
		messages = append(messages, fmt.Sprintf("email %q is already taken", req.Email))
	}

	if req.Password != "" {
		messages = append(messages, ValidatePassword(req.Password)...)
	}
	if len(messages) > 0 {
		return nil, &apperrors.ValidationError{Messages: messages}
	}

	emailChanged := user.Email != strings.ToLower(req.Email)

	user.Username = req.Username
	user.Name = req.Name
	user.LastName = req.LastName
	user.Phone = req.Phone
	user.EmailConfirmed = user.EmailConfirmed && !emailChanged
	user.Email = strings.ToLower(req.Email)
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		user.Password = string(hashed)
	}
	if emailChanged {
		user.ConfirmationToken = NewOpaqueToken()
	}

	updated, err := s.users.Update(id, user)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if updated == nil {
		return nil, apperrors.ErrUserNotFound
	}

	if emailChanged {
		s.sendConfirmation(updated, origin, isAPI)
	}

	result := dto.UserToDTO(updated)
	return &result, nil
}

// DeleteUser physically removes a user. Admin use.
func (s *AccountService) DeleteUser(id string) error {
	user, err := s.users.GetByID(id)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if user == nil {
		return apperrors.ErrUserNotFound
	}
	if err := s.users.Delete(id); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// SetProfileImage stores the profile image path on the user.
func (s *AccountService) SetProfileImage(id, path string) error {
	user, err := s.users.GetByID(id)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if user == nil {
		return apperrors.ErrUserNotFound
	}
	user.ProfileImage = path
	if _, err := s.users.Update(id, user); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// recordFailedAttempt bumps the counter and locks the account when the
// threshold is reached.
func (s *AccountService) recordFailedAttempt(user *models.User, cfg *config.Config, now time.Time) {
	user.FailedLoginAttempts++
	if user.FailedLoginAttempts >= cfg.LockoutMaxAttempts {
		lockedUntil := now.Add(cfg.LockoutDuration)
		user.LockedUntil = &lockedUntil
		user.FailedLoginAttempts = 0
		logger.Get().Warnw("account locked",
			"user_id", user.ID,
			"until", lockedUntil,
		)
	}
	if _, err := s.users.Update(user.ID, user); err != nil {
		logger.Get().Errorw("failed attempt bookkeeping failed", "user_id", user.ID, "error", err.Error())
	}
}

// sendConfirmation emails the confirmation link (web) or the raw token (API).
func (s *AccountService) sendConfirmation(user *models.User, origin string, isAPI bool) {
	var body string
	if isAPI {
		body = fmt.Sprintf("Please confirm your account using this token %s", user.ConfirmationToken)
	} else {
		body = fmt.Sprintf("Please confirm your account visiting this URL %s/confirm-email?user=%s&token=%s",
			origin, user.ID, user.ConfirmationToken)
	}
	if err := s.sender.Send(mailer.Message{
		To:       []string{user.Email},
		Subject:  "Confirm registration",
		HTMLBody: body,
	}); err != nil {
		logger.Get().Errorw("confirmation email failed", "user_id", user.ID, "error", err.Error())
	}
}
