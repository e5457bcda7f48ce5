package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/krushit1307/HRMS/internal/app"
	"github.com/krushit1307/HRMS/internal/bootstrap"
	"github.com/krushit1307/HRMS/internal/config"
	"github.com/krushit1307/HRMS/internal/shared/apperror"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := bootstrap.NewLogger(bootstrap.LoggerConfig{
		Production: cfg.IsProduction(),
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	ctx := context.Background()
	router, res, err := app.BuildApp(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer func() {
		if err := res.Close(); err != nil {
			logger.Warn("close resources failed", zap.Error(err))
		}
	}()

	err = bootstrap.StartHTTPServer(
		ctx,
		router,
		bootstrap.ServerConfig{
			Port:         cfg.Port,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		bootstrap.NewZapAuditLogger(logger),
	)
	if err != nil {
		logger.Error("http server stopped", zap.Error(err))
	}
}
