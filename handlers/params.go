package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"CityGeneral/services"
)

// parseIDParam reads a numeric path parameter. Non-numeric ids are reported
// as validation errors, not as lookups that happened to miss.
func parseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", services.ErrValidation, name)
	}
	return id, nil
}

// parseIDQuery reads an optional numeric query parameter, returning 0 when
// it is absent.
func parseIDQuery(c *gin.Context, name string) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", services.ErrValidation, name)
	}
	return id, nil
}
