package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func parseIDParam(c *gin.Context, param string) uint {
	idStr := c.Param(param)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: err.Error(),
		})
		return 0
	}
	return uint(id)
}

func parseIntQuery(c *gin.Context, param string, defaultValue int) int {
	valueStr := c.Query(param)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// requireAdminID reads the admin identity off the query string. There is no
// authentication layer; the caller states who they are and ownership checks
// do the rest.
func requireAdminID(c *gin.Context) string {
	adminID := strings.TrimSpace(c.Query("admin_id"))
	if adminID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "admin_id query parameter is required",
		})
		return ""
	}
	return adminID
}
