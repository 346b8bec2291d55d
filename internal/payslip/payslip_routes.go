package payslip

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	jwtSecret string,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	readScope := middleware.RBACAny(rbacService, "payslip", actionReadAny, actionReadOwn)

	payslips := r.Group("/payslips")
	payslips.Use(middleware.AuthMiddleware(jwtSecret))
	{
		payslips.GET("", readScope, handler.List)
		payslips.GET("/export/excel", middleware.RateLimitByUser(0.5, 2), readScope, handler.ExportExcel)
		payslips.GET("/export/pdf", middleware.RateLimitByUser(0.5, 2), readScope, handler.ExportPDF)
		payslips.GET("/:id", readScope, handler.GetByID)
		payslips.GET("/:id/download", readScope, handler.Download)

		payslips.POST("/generate",
			middleware.RateLimitByUser(0.2, 2),
			middleware.Idempotency(redisClient),
			middleware.RBACAuthorize(rbacService, "payslip", "create"),
			handler.Generate,
		)
		payslips.POST("/bulk-generate",
			middleware.RateLimitByUser(0.1, 1),
			middleware.Idempotency(redisClient),
			middleware.RBACAuthorize(rbacService, "payslip", "create"),
			handler.BulkGenerate,
		)
		payslips.POST("/bulk-generate/async",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "payslip", "create"),
			handler.RequestBulkGenerate,
		)
	}
}
