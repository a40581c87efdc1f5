package v1

import (
	"github.com/gin-gonic/gin"

	"adminsuite/internal/infrastructure/http/v1/middleware"
)

// TableRouteHandler is implemented by handlers that serve a paged table.
type TableRouteHandler interface {
	List(c *gin.Context)
}

// DetailRouteHandler is an optional interface for tables with a detail view.
type DetailRouteHandler interface {
	Get(c *gin.Context)
}

// RegisterTableRoutes registers GET "" and, when the handler supports it,
// GET "/:id", both guarded by the "<resource>:read" permission.
func RegisterTableRoutes(group *gin.RouterGroup, handler TableRouteHandler, resource string) {
	read := middleware.RequirePermission(resource + ":read")
	group.GET("", read, handler.List)

	if detail, ok := handler.(DetailRouteHandler); ok {
		group.GET("/:id", read, detail.Get)
	}
}

// WriteRouteHandler is implemented by tables that accept changes.
type WriteRouteHandler interface {
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// RegisterWriteRoutes registers POST "", PUT "/:id" and DELETE "/:id"
// behind guard. POST and PUT also pass through idempotent.
func RegisterWriteRoutes(group *gin.RouterGroup, handler WriteRouteHandler, idempotent gin.HandlerFunc, guard ...gin.HandlerFunc) {
	write := group.Group("", guard...)
	write.POST("", idempotent, handler.Create)
	write.PUT("/:id", idempotent, handler.Update)
	write.DELETE("/:id", handler.Delete)
}
