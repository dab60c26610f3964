package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noah-isme/sports-academy-api/internal/models"
	appErrors "github.com/noah-isme/sports-academy-api/pkg/errors"
	"github.com/noah-isme/sports-academy-api/pkg/response"
)

type roleReader interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// RequireRoles permits the request when the caller's stored role is one
// of the allowed roles. The role is always resolved from the users
// collection rather than trusted from the token, so a promotion or
// demotion takes effect on the next request. Must run after JWT.
func RequireRoles(users roleReader, allowed ...models.UserRole) gin.HandlerFunc {
	allowedRoles := make(map[models.UserRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedRoles[role] = struct{}{}
	}

	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		user, err := users.FindByEmail(c.Request.Context(), claims.Email)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				response.Error(c, appErrors.ErrForbidden)
				c.Abort()
				return
			}
			response.Error(c, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load user"))
			c.Abort()
			return
		}

		if _, ok := allowedRoles[user.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAdmin permits only admins.
func RequireAdmin(users roleReader) gin.HandlerFunc {
	return RequireRoles(users, models.RoleAdmin)
}

// RequireInstructor permits instructors; admins pass as a superset.
func RequireInstructor(users roleReader) gin.HandlerFunc {
	return RequireRoles(users, models.RoleInstructor, models.RoleAdmin)
}
