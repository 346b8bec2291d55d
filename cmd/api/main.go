package main

import (
	"context"
	"log"

	"go-payroll/internal/app"
	"go-payroll/internal/bootstrap"
	"go-payroll/internal/config"
	"go-payroll/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := app.NewLogger(cfg.App)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	apperror.Init()

	infra, err := app.Connect(cfg, logger, true)
	if err != nil {
		logger.Fatal("connect infrastructure failed", zap.Error(err))
	}

	if err := app.Migrate(infra.GormDB, logger); err != nil {
		logger.Fatal("migrate failed", zap.Error(err))
	}

	router, err := app.BuildRouter(infra, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	server := bootstrap.NewServer(
		router,
		bootstrap.ServerConfig{
			Port:            cfg.HTTP.Port,
			ReadTimeout:     cfg.HTTP.ReadTimeout,
			WriteTimeout:    cfg.HTTP.WriteTimeout,
			IdleTimeout:     cfg.HTTP.IdleTimeout,
			ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
		},
		bootstrap.NewStdoutAuditLogger(logger),
		logger,
		infra.Close,
	)

	ctx, stop := bootstrap.SignalContext(context.Background())
	defer stop()

	if err := server.Run(ctx); err != nil {
		logger.Fatal("http server failed", zap.Error(err))
	}
}
