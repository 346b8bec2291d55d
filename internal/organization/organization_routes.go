package organization

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService middleware.RBACService,
	jwtSecret string,
) {
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware(jwtSecret))
	{
		departments.GET("", middleware.RBACAuthorize(rbacService, "department", "read"), h.ListDepartments)
		departments.POST("", middleware.RBACAuthorize(rbacService, "department", "create"), h.CreateDepartment)
		departments.DELETE("/:id", middleware.RBACAuthorize(rbacService, "department", "delete"), h.DeleteDepartment)
	}

	positions := r.Group("/positions")
	positions.Use(middleware.AuthMiddleware(jwtSecret))
	{
		positions.GET("", middleware.RBACAuthorize(rbacService, "position", "read"), h.ListPositions)
		positions.POST("", middleware.RBACAuthorize(rbacService, "position", "create"), h.CreatePosition)
		positions.DELETE("/:id", middleware.RBACAuthorize(rbacService, "position", "delete"), h.DeletePosition)
	}
}
