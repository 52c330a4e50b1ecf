package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "investapp/internal/errors"
	"investapp/internal/identity"
)

// AuthHandler handles registration, login, and account recovery requests.
type AuthHandler struct {
	accounts *identity.AccountService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accounts *identity.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// LoginRequest represents the request payload for logging in.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ConfirmEmailRequest represents the request payload for confirming an email.
type ConfirmEmailRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Token  string `json:"token" binding:"required"`
}

// ForgotPasswordRequest represents the request payload for a reset token.
type ForgotPasswordRequest struct {
	Username string `json:"username" binding:"required"`
}

// ResetPasswordRequest represents the request payload for resetting a password.
type ResetPasswordRequest struct {
	UserID   string `json:"user_id" binding:"required,uuid"`
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles the creation of a new account
// @Summary     Register an account
// @Description Create a new investor account and send the confirmation email
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body identity.RegisterRequest true "Account details"
// @Success     201 {object} dto.UserDTO "Account created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req identity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// API clients receive the raw confirmation token over email, the role
	// and confirmed fields are not honored on self-registration.
	req.Role = ""
	req.Confirmed = false
	user, err := h.accounts.Register(req, "", true)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// Login handles credential verification and token issuance
// @Summary     Log in
// @Description Verify credentials and return a signed access token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "Credentials"
// @Success     200 {object} map[string]interface{} "Access token and user"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials or inactive account"
// @Failure     423 {object} ErrorResponse "Account locked"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.accounts.Authenticate(req.Username, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := identity.GenerateAccessToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

// ConfirmEmail handles account activation
// @Summary     Confirm email
// @Description Activate an account using the emailed confirmation token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body ConfirmEmailRequest true "Confirmation token"
// @Success     200 {object} MessageResponse "Account confirmed"
// @Failure     400 {object} ErrorResponse "Invalid token"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /auth/confirm-email [post]
func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	var req ConfirmEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accounts.ConfirmEmail(req.UserID, req.Token); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email confirmed successfully"})
}

// ForgotPassword handles reset token issuance
// @Summary     Request password reset
// @Description Email a password reset token to the account owner
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body ForgotPasswordRequest true "Account username"
// @Success     200 {object} MessageResponse "Reset token sent"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accounts.ForgotPassword(req.Username, "", true); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset token sent"})
}

// ResetPassword handles password replacement with a reset token
// @Summary     Reset password
// @Description Replace the account password using the emailed reset token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body ResetPasswordRequest true "Reset token and new password"
// @Success     200 {object} MessageResponse "Password reset"
// @Failure     400 {object} ErrorResponse "Invalid token or weak password"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accounts.ResetPassword(req.UserID, req.Token, req.Password); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

// Me returns the authenticated user's profile
// @Summary     Current user
// @Description Return the profile of the authenticated user
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} dto.UserDTO "Profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.accounts.GetByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
