package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "investapp/internal/errors"
	"investapp/internal/identity"
)

// Context keys set by the auth middlewares.
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextEmail    = "email"
	ContextRole     = "role"
)

// AuthCookieName is the cookie carrying the session JWT on the web app.
const AuthCookieName = "investapp_session"

// AuthMiddleware verifies the Bearer JWT and sets the user in the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := identity.ParseAccessToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// CookieAuthMiddleware verifies the session cookie on web routes and
// redirects unauthenticated browsers to the login page.
func CookieAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(AuthCookieName)
		if err != nil || tokenString == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		claims, err := identity.ParseAccessToken(tokenString)
		if err != nil {
			c.SetCookie(AuthCookieName, "", -1, "/", "", false, true)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// RequireRoles allows the request through only when the authenticated
// user's role is one of the given roles. Must run after an auth middleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.JSON(apperrors.ErrForbidden.StatusCode, gin.H{"error": gin.H{
			"code":    apperrors.ErrForbidden.Code,
			"message": apperrors.ErrForbidden.Message,
		}})
		c.Abort()
	}
}

func setClaims(c *gin.Context, claims *identity.Claims) {
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextUsername, claims.Username)
	c.Set(ContextEmail, claims.Email)
	c.Set(ContextRole, claims.Role)
}
