package payroll

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

	runs := r.Group("/payroll-runs")
	runs.Use(middleware.AuthMiddleware(jwtSecret))
	{
		runs.GET("", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetRuns)
		runs.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetRun)
		runs.GET("/:id/entries", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetEntries)
		runs.POST("",
			middleware.RateLimitByUser(0.2, 2),
			middleware.Idempotency(redisClient),
			middleware.RBACAuthorize(rbacService, "payroll", "create"),
			handler.CreateRun,
		)
		runs.POST("/:id/process",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "payroll", "process"),
			handler.Process,
		)
		runs.DELETE("/:id", middleware.RBACAuthorize(rbacService, "payroll", "delete"), handler.DeleteRun)
	}
}
