package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storebot/internal/server/http/dto"
	"github.com/polkiloo/storebot/internal/server/http/middleware"
)

// CurrentOperator extracts the authenticated operator name from context.
func CurrentOperator(c *gin.Context) string {
	return c.GetString(middleware.OperatorContextKey)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: message})
}
