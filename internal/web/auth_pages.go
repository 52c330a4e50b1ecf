package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"investapp/internal/config"
	apperrors "investapp/internal/errors"
	"investapp/internal/identity"
	"investapp/internal/middleware"
)

// errorText flattens command-layer errors into a message suitable for a page.
func errorText(err error) string {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Something went wrong, try again"
}

// ShowLogin renders the login page.
func (h *Handlers) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// Login verifies credentials and establishes the session cookie.
func (h *Handlers) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.accounts.Authenticate(username, password)
	if err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Error":    errorText(err),
			"Username": username,
		})
		return
	}

	token, err := identity.GenerateAccessToken(user)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": "Something went wrong, try again"})
		return
	}

	maxAge := int(config.Get().JWTExpirationDur.Seconds())
	c.SetCookie(middleware.AuthCookieName, token, maxAge, "/", "", false, true)
	c.Redirect(http.StatusFound, "/portfolios")
}

// Logout clears the session cookie.
func (h *Handlers) Logout(c *gin.Context) {
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}

// ShowRegister renders the registration page.
func (h *Handlers) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"Form": identity.RegisterRequest{}})
}

// Register creates an account and points the user at their inbox.
func (h *Handlers) Register(c *gin.Context) {
	req := identity.RegisterRequest{
		Email:    c.PostForm("email"),
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
		Name:     c.PostForm("name"),
		LastName: c.PostForm("last_name"),
		Phone:    c.PostForm("phone"),
	}

	_, err := h.accounts.Register(req, config.Get().BaseURL, false)
	if err != nil {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"Error": errorText(err),
			"Form":  req,
		})
		return
	}

	c.HTML(http.StatusOK, "register_done.html", gin.H{"Email": req.Email})
}

// ConfirmEmail activates an account from the emailed link.
func (h *Handlers) ConfirmEmail(c *gin.Context) {
	userID := c.Query("user")
	token := c.Query("token")

	if err := h.accounts.ConfirmEmail(userID, token); err != nil {
		c.HTML(http.StatusBadRequest, "confirm_email.html", gin.H{"Error": errorText(err)})
		return
	}

	c.HTML(http.StatusOK, "confirm_email.html", gin.H{"Confirmed": true})
}

// ShowForgotPassword renders the reset request page.
func (h *Handlers) ShowForgotPassword(c *gin.Context) {
	c.HTML(http.StatusOK, "forgot_password.html", gin.H{})
}

// ForgotPassword emails a reset link.
func (h *Handlers) ForgotPassword(c *gin.Context) {
	username := c.PostForm("username")

	if err := h.accounts.ForgotPassword(username, config.Get().BaseURL, false); err != nil {
		c.HTML(http.StatusBadRequest, "forgot_password.html", gin.H{
			"Error":    errorText(err),
			"Username": username,
		})
		return
	}

	c.HTML(http.StatusOK, "forgot_password.html", gin.H{"Sent": true})
}

// ShowResetPassword renders the reset form reached from the emailed link.
func (h *Handlers) ShowResetPassword(c *gin.Context) {
	c.HTML(http.StatusOK, "reset_password.html", gin.H{
		"UserID": c.Query("user"),
		"Token":  c.Query("token"),
	})
}

// ResetPassword consumes the reset token and sets the new password.
func (h *Handlers) ResetPassword(c *gin.Context) {
	userID := c.PostForm("user_id")
	token := c.PostForm("token")
	password := c.PostForm("password")

	if err := h.accounts.ResetPassword(userID, token, password); err != nil {
		c.HTML(http.StatusBadRequest, "reset_password.html", gin.H{
			"Error":  errorText(err),
			"UserID": userID,
			"Token":  token,
		})
		return
	}

	c.HTML(http.StatusOK, "reset_password.html", gin.H{"Done": true})
}
