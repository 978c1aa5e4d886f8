package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/evelynagreer/survey-vote/backend/internal/service"
)

// Auth gates a route group behind bearer-token authentication. A nil resolver
// result means the caller is not allowed in (403); a resolver error is an
// infrastructure failure (500).
func Auth(auth *service.AuthService) gin.HandlerFunc {
	return AuthWithRole(auth, "")
}

// AuthWithRole additionally requires the resolved account to hold the given
// role.
func AuthWithRole(auth *service.AuthService, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}

		account, err := auth.LoadAccountByToken(c.Request.Context(), token, role)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if account == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}

		c.Set("account_id", account.ID)
		c.Set("account", account)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if token := c.GetHeader("x-access-token"); token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
