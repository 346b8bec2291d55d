package employeesalary

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	jwtSecret string,
) {
	readLimit := middleware.RateLimitByUser(2, 5)
	writeLimit := middleware.RateLimitByUser(0.2, 1)
	canRead := middleware.RBACAuthorize(rbacService, "salary", "read")
	canUpdate := middleware.RBACAuthorize(rbacService, "salary", "update")

	salaries := r.Group("/employee-salaries", middleware.AuthMiddleware(jwtSecret))

	salaries.GET("", readLimit, canRead, handler.GetAll)
	salaries.GET("/:id", readLimit, canRead, handler.GetById)
	// hasil kalkulasi gaji (gross, potongan, BPJS, take home pay)
	salaries.GET("/:id/payroll", readLimit, canRead, handler.CalculatePayroll)
	salaries.GET("/employee/:employeeId/active", readLimit, canRead, handler.GetActiveByEmployee)

	salaries.POST("", writeLimit, canUpdate, handler.Create)
	salaries.PUT("/:id", writeLimit, canUpdate, handler.Update)
	salaries.PATCH("/:id/toggle-status", writeLimit, canUpdate, handler.ToggleStatus)
	salaries.DELETE("/:id", middleware.RateLimitByUser(0.05, 1), canUpdate, handler.Delete)
}
