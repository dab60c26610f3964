package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sports-academy-api/internal/models"
	"github.com/noah-isme/sports-academy-api/internal/service"
	appErrors "github.com/noah-isme/sports-academy-api/pkg/errors"
	"github.com/noah-isme/sports-academy-api/pkg/response"
)

// ContextUserKey is the gin context key storing the verified claims.
const ContextUserKey = "currentUser"

// JWT protects routes by requiring a valid bearer token. Both the missing
// and the invalid credential case answer 401 with the legacy message.
func JWT(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// ClaimsFromContext returns the verified claims, or nil when the token
// verifier did not run.
func ClaimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}
