package app

import (
	"net/http"

	"go-payroll/internal/employee"
	"go-payroll/internal/employeesalary"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/middleware"
	"go-payroll/internal/organization"
	"go-payroll/internal/payroll"
	"go-payroll/internal/payslip"
	"go-payroll/internal/rbac"
	"go-payroll/internal/rbac/infra"
	"go-payroll/internal/salarycomponent"
	"go-payroll/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type services struct {
	rbac            rbac.Service
	organization    organization.Service
	employee        employee.Service
	salaryComponent salarycomponent.Service
	employeeSalary  employeesalary.Service
	payroll         payroll.Service
	payslip         payslip.Service
}

func newServices(in *Infra, reg prometheus.Registerer) (*services, error) {
	db, gormDB, rdb, logger := in.DB, in.GormDB, in.Redis, in.Logger

	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return nil, err
	}

	outboxRepo := kafka.NewOutboxRepository(db)
	counterRepo := counter.NewRepository(gormDB)

	salaryComponentService := salarycomponent.NewService(db, salarycomponent.NewRepository(gormDB), rdb, logger)
	employeeSalaryService := employeesalary.NewService(db, employeesalary.NewRepository(gormDB), salaryComponentService, logger)

	return &services{
		rbac:            rbac.NewService(rbac.NewRepository(gormDB), enforcer, logger),
		organization:    organization.NewService(db, organization.NewRepository(gormDB), logger),
		employee:        employee.NewServiceWithOutbox(db, employee.NewRepository(gormDB), counterRepo, outboxRepo, rdb, logger),
		salaryComponent: salaryComponentService,
		employeeSalary:  employeeSalaryService,
		payroll:         payroll.NewService(db, payroll.NewRepository(gormDB), employeeSalaryService, logger),
		payslip: payslip.NewServiceWithOutbox(
			db,
			payslip.NewRepository(gormDB),
			counterRepo,
			outboxRepo,
			payslip.NewMarotoRenderer(),
			payslip.NewLocalStorage(in.Config.Storage.PayslipDir),
			payslip.NewMetrics(reg),
			in.Config.Report.CompanyName,
			logger,
		),
	}, nil
}

// BuildRouter menyusun semua module HTTP di bawah /api/v1 beserta /metrics.
func BuildRouter(in *Infra, reg prometheus.Registerer, gatherer prometheus.Gatherer) (*gin.Engine, error) {
	svc, err := newServices(in, reg)
	if err != nil {
		return nil, err
	}

	secret := in.Config.JWT.Secret
	rdb := in.Redis

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ContextLogger(in.Logger))
	router.Use(middleware.RateLimitByIP(20, 40))
	router.Use(middleware.NewHTTPMetrics(reg).Handler())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := router.Group("/api/v1")
	{
		rbac.RegisterRoutes(api, rbac.NewHandler(svc.rbac), svc.rbac, secret)
		organization.RegisterRoutes(api, organization.NewHandler(svc.organization), svc.rbac, secret)
		employee.RegisterRoutes(api, employee.NewHandler(svc.employee, in.Logger), svc.rbac, secret)
		salarycomponent.RegisterRoutes(api, salarycomponent.NewHandler(svc.salaryComponent), svc.rbac, secret)
		employeesalary.RegisterRoutes(api, employeesalary.NewHandler(svc.employeeSalary), svc.rbac, secret)
		payroll.RegisterRoutes(api, payroll.NewHandlerWithRedis(svc.payroll, rdb), svc.rbac, secret, rdb)
		payslip.RegisterRoutes(api, payslip.NewHandlerWithRedis(svc.payslip, rdb), svc.rbac, secret, rdb)
	}

	return router, nil
}
