package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/report-card-api/internal/models"
	apperrors "github.com/noah-isme/report-card-api/pkg/errors"
	"github.com/noah-isme/report-card-api/pkg/response"
)

// ClaimsContextKey is where authenticated claims live in the Gin context.
const ClaimsContextKey = "auth_claims"

// TokenValidator verifies an access token and returns its claims.
type TokenValidator interface {
	ValidateToken(token string) (*models.JWTClaims, error)
}

// JWTAuth rejects requests without a valid Bearer token and stores the claims
// in the context for downstream handlers.
func JWTAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Error(c, apperrors.Clone(apperrors.ErrUnauthorized, "missing bearer token"))
			c.Abort()
			return
		}

		claims, err := validator.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ClaimsContextKey, claims)
		c.Next()
	}
}

// ClaimsFromContext retrieves the authenticated claims, if any.
func ClaimsFromContext(c *gin.Context) (*models.JWTClaims, bool) {
	v, exists := c.Get(ClaimsContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*models.JWTClaims)
	return claims, ok
}
