package main

import (
	"context"
	"log"

	"go-payroll/internal/app"
	"go-payroll/internal/bootstrap"
	"go-payroll/internal/config"

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

	infra, err := app.Connect(cfg, logger, false)
	if err != nil {
		logger.Fatal("connect database failed", zap.Error(err))
	}
	defer infra.Close()

	ctx, stop := bootstrap.SignalContext(context.Background())
	defer stop()

	if err := app.RunWorker(ctx, infra); err != nil {
		logger.Fatal("run worker failed", zap.Error(err))
	}
}
