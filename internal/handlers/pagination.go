package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const defaultPageSize = 20

// parsePagination reads limit/offset query params, falling back to the
// defaults on junk input.
func parsePagination(c *gin.Context) (limit, offset int) {
	limit = defaultPageSize
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
