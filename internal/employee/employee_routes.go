package employee

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes memasang /employees. Semua endpoint baca berbagi satu
// limiter per user, begitu juga endpoint tulis.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	jwtSecret string,
) {
	readLimit := middleware.RateLimitByUser(5, 20)
	writeLimit := middleware.RateLimitByUser(0.5, 2)
	can := func(action string) gin.HandlerFunc {
		return middleware.RBACAuthorize(rbacService, "employee", action)
	}

	employees := r.Group("/employees", middleware.AuthMiddleware(jwtSecret))

	employees.GET("", readLimit, can("read"), handler.List)
	employees.GET("/options", readLimit, can("read"), handler.GetOptions)
	employees.GET("/:id", readLimit, can("read"), handler.GetByID)

	employees.POST("", writeLimit, can("create"), handler.Create)
	employees.PUT("/:id", writeLimit, can("update"), handler.Update)
	employees.DELETE("/:id", middleware.RateLimitByUser(0.1, 1), can("delete"), handler.Delete)
}
