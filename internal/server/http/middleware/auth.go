package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storebot/internal/domain/errors"
	pkgAuth "github.com/polkiloo/storebot/internal/pkg/auth"
)

// OperatorContextKey is a gin context key for the authenticated operator name.
const OperatorContextKey = "operator"

// OperatorAuthenticator validates admin credentials and session tokens.
type OperatorAuthenticator interface {
	VerifyPassword(username, password string) error
	ParseToken(token string) (string, error)
}

// AdminRequired accepts either HTTP Basic credentials or a Bearer session token.
func AdminRequired(auth OperatorAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if username, password, ok := c.Request.BasicAuth(); ok {
			if err := auth.VerifyPassword(username, password); err != nil {
				if errors.Is(err, domainErrors.ErrInvalidCredentials) {
					c.AbortWithStatus(http.StatusUnauthorized)
					return
				}
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			c.Set(OperatorContextKey, username)
			c.Next()
			return
		}

		token := extractToken(c)
		if token == "" {
			c.Header("WWW-Authenticate", `Basic realm="storebot"`)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		operator, err := auth.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(OperatorContextKey, operator)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
