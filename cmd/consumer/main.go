package main

import (
	"context"
	"log"

	"go-payroll/internal/app"
	"go-payroll/internal/bootstrap"
	"go-payroll/internal/config"
	"go-payroll/internal/shared/apperror"

	"github.com/joho/godotenv"
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

	apperror.Init()

	infra, err := app.Connect(cfg, logger, true)
	if err != nil {
		logger.Fatal("connect infrastructure failed", zap.Error(err))
	}
	defer infra.Close()

	ctx, stop := bootstrap.SignalContext(context.Background())
	defer stop()

	if err := app.RunConsumer(ctx, infra, bootstrap.NewStdoutAuditLogger(logger)); err != nil {
		logger.Fatal("run consumer failed", zap.Error(err))
	}
}
