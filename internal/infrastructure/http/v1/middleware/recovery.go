// Package middleware provides HTTP middleware components.
package middleware

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"adminsuite/internal/core/apperror"
	appctx "adminsuite/internal/core/context"
	"adminsuite/pkg/logger"
)

// Recovery converts a handler panic into an INTERNAL_ERROR response. It
// sits inside ErrorHandler, which renders the registered error. The panic
// value and stack are logged with the route; clients see neither.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		ctx := c.Request.Context()
		logger.Error(ctx, "handler panicked",
			"route", c.FullPath(),
			"panic", recovered,
			"stack", string(debug.Stack()),
		)

		c.Abort()
		_ = c.Error(apperror.NewInternal(fmt.Errorf("panic in %s: %v", c.FullPath(), recovered)).
			WithDetail("request_id", appctx.RequestID(ctx)))
	})
}
