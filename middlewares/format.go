package middlewares

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"CityGeneral/services"
	"CityGeneral/utils"
)

// RespondJSON writes a JSON response to the client.
func RespondJSON(c *gin.Context, data interface{}, status int) {
	c.JSON(status, data)
}

// HttpError logs an error and writes an HTTP error response to the client.
func HttpError(c *gin.Context, message string, status int, err error) {
	log.Printf("HTTP %d - %s: %v", status, message, err)
	c.JSON(status, gin.H{"error": message})
}

// RespondError translates a service error into the HTTP error taxonomy. The
// response carries a machine-readable code so clients can branch; internal
// causes only go to the log.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials) || errors.Is(err, utils.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials", "code": "unauthenticated"})
	case errors.Is(err, services.ErrPasswordExpired):
		c.JSON(http.StatusForbidden, gin.H{"error": "Password expired", "code": "password_expired"})
	case errors.Is(err, services.ErrPasswordChangeRequired):
		c.JSON(http.StatusForbidden, gin.H{"error": "Password change required", "code": "password_change_required"})
	case errors.Is(err, services.ErrInsufficientRole):
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions", "code": "insufficient_role"})
	case errors.Is(err, services.ErrInactiveAccount):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Inactive account", "code": "inactive_account"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "code": "not_found"})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": reason(err, services.ErrConflict, "Conflict"), "code": "conflict"})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": reason(err, services.ErrValidation, "Validation failed"), "code": "validation"})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": "internal"})
	}
}

// abortWithError writes the taxonomy response and stops the handler chain.
func abortWithError(c *gin.Context, err error) {
	RespondError(c, err)
	c.Abort()
}

// reason strips the sentinel prefix from a wrapped error so the client sees
// the specific cause without the internal chain.
func reason(err error, sentinel error, fallback string) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" || msg == sentinel.Error() {
		return fallback
	}
	return msg
}
