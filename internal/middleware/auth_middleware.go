// File: internal/middleware/auth_middleware.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shortstay_backend/internal/common"
	"shortstay_backend/internal/shared"
)

// Authenticate returns a middleware that validates the bearer token and
// stores the authenticated user's identity in the request context.
func Authenticate(tokenService shared.TokenService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := common.GetTokenFromContext(c)
		if tokenString == "" {
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization token is required"))
			return
		}

		claims, err := tokenService.ValidateToken(tokenString)
		if err != nil {
			logger.Debug("Token validation failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Invalid or expired token"))
			return
		}

		c.Set(common.UserIDKey, claims.UserID)
		c.Set(common.UserEmailKey, claims.Email)
		c.Set(common.UserRoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole returns a middleware that restricts access to users whose role
// is one of the allowed roles. Must run after Authenticate.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := common.GetUserRoleFromContext(c)
		if role == "" {
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authentication required"))
			return
		}
		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}
		common.RespondWithError(c, common.ErrForbidden.WithDetails("Insufficient permissions for this resource"))
	}
}

// RequireAdmin restricts access to admin users.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(common.RoleAdmin)
}

// RequireHost restricts access to hosts and admins.
func RequireHost() gin.HandlerFunc {
	return RequireRole(common.RoleHost, common.RoleAdmin)
}
