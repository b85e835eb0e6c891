package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/response"
)

var (
	errMissingHeader = apperror.New(apperror.KindUnauthorized, "missing Authorization header")
	errBadHeader     = apperror.New(apperror.KindUnauthorized, "invalid Authorization header format")
	errBadToken      = apperror.New(apperror.KindUnauthorized, "invalid or expired token")
)

// AuthRequired is a Gin middleware that validates JWT from Authorization: Bearer <token>.
// It does not call c.Next, so it can be composed with other checks in a
// single handler.
func AuthRequired(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, errMissingHeader)
			c.Abort()
			return
		}

		scheme, tokenStr, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "bearer") || tokenStr == "" {
			response.Error(c, errBadHeader)
			c.Abort()
			return
		}

		claims, err := jwtManager.ParseAndValidate(tokenStr)
		if err != nil {
			response.Error(c, errBadToken)
			c.Abort()
			return
		}

		SetCaller(c, claims.UserID(), claims.Email)
	}
}
