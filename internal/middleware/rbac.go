package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ivaschool/portal-api/internal/models"
	appErrors "github.com/ivaschool/portal-api/pkg/errors"
	"github.com/ivaschool/portal-api/pkg/response"
)

// RequireRoles lets the request through only for the listed roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		value, exists := c.Get(ContextUserKey)
		if !exists {
			response.Abort(c, appErrors.ErrUnauthorized)
			return
		}
		claims, ok := value.(*models.JWTClaims)
		if !ok || claims == nil {
			response.Abort(c, appErrors.ErrUnauthorized)
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			response.Abort(c, appErrors.ErrForbidden)
			return
		}
		c.Next()
	}
}
