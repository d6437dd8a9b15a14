package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/report-card-api/internal/models"
	apperrors "github.com/noah-isme/report-card-api/pkg/errors"
	"github.com/noah-isme/report-card-api/pkg/response"
)

// RequireRoles allows the request through only when the authenticated user
// holds one of the given roles. Must run after JWTAuth.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			response.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, apperrors.Clone(apperrors.ErrForbidden, "this action is not available for your role"))
			c.Abort()
			return
		}
		c.Next()
	}
}
