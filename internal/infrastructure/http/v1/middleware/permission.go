package middleware

import (
	"github.com/gin-gonic/gin"

	"adminsuite/internal/core/apperror"
	appctx "adminsuite/internal/core/context"
)

// AdminRole bypasses permission checks.
const AdminRole = "ADMIN"

// RequirePermission checks the principal's token permissions.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := appctx.GetUser(c.Request.Context())
		if user == nil {
			abortUnauthorized(c, "authentication required")
			return
		}

		if user.Role == AdminRole || user.HasPermission(permission) {
			c.Next()
			return
		}

		_ = c.Error(
			apperror.NewForbidden("insufficient permissions").
				WithDetail("required_permission", permission),
		)
		c.Abort()
	}
}
