package app

import (
	"go-payroll/internal/config"

	"go.uber.org/zap"
)

// NewLogger memilih konfigurasi zap sesuai APP_ENV dan memasangnya sebagai global.
func NewLogger(cfg config.AppConfig) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}

	logger = logger.With(zap.String("app", cfg.Name))
	zap.ReplaceGlobals(logger)
	return logger, nil
}
