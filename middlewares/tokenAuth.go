package middlewares

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"CityGeneral/models"
	"CityGeneral/services"
	"CityGeneral/utils"
)

const currentUserKey = "currentUser"

// UserFinder resolves an identity by id. Satisfied by the user repository.
type UserFinder interface {
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
}

// extractBearerToken pulls the token out of the Authorization header.
func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// RequireAuth validates the access token and resolves the caller's identity.
// The gate order matters: password remediation is checked before the active
// flag and before any role gate, and every token failure looks the same to
// the client.
func RequireAuth(maker *utils.TokenMaker, users UserFinder, policy *utils.PasswordPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing access token", "code": "unauthenticated"})
			return
		}

		claims, err := maker.Verify(token, utils.TokenKindAccess)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials", "code": "unauthenticated"})
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			log.Printf("user lookup failed for id %d: %v", claims.UserID, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": "internal"})
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found", "code": "unauthenticated"})
			return
		}

		if policy.IsExpired(user) {
			abortWithError(c, services.ErrPasswordExpired)
			return
		}
		if user.ForcePasswordChange {
			abortWithError(c, services.ErrPasswordChangeRequired)
			return
		}

		if !user.IsActive {
			abortWithError(c, services.ErrInactiveAccount)
			return
		}

		// Advisory only: the password is still valid but expires soon.
		if days := policy.DaysUntilExpiry(user); days > 0 && days <= 7 {
			c.Header("X-Password-Expires-Soon", strconv.Itoa(days))
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// OptionalAuth resolves the identity when a valid token is presented and
// proceeds anonymously otherwise. It never rejects.
func OptionalAuth(maker *utils.TokenMaker, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			c.Next()
			return
		}
		claims, err := maker.Verify(token, utils.TokenKindAccess)
		if err != nil {
			c.Next()
			return
		}
		user, err := users.GetUserByID(c.Request.Context(), claims.UserID)
		if err == nil && user != nil && user.IsActive {
			c.Set(currentUserKey, user)
		}
		c.Next()
	}
}

// RequireRole passes callers whose role matches, with admin as an implicit
// superuser. Must run after RequireAuth.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated", "code": "unauthenticated"})
			return
		}
		if user.Role != role && user.Role != models.RoleAdmin {
			abortWithError(c, services.ErrInsufficientRole)
			return
		}
		c.Next()
	}
}

// RequireAdmin passes administrators only; there is no bypass.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated", "code": "unauthenticated"})
			return
		}
		if user.Role != models.RoleAdmin {
			abortWithError(c, services.ErrInsufficientRole)
			return
		}
		c.Next()
	}
}

// CurrentUser retrieves the authenticated identity attached by RequireAuth
// or OptionalAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
