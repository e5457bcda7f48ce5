package app

import (
	"context"
	"net/http"
	"time"

	"github.com/krushit1307/HRMS/internal/config"
	"github.com/krushit1307/HRMS/internal/middleware"
	"github.com/krushit1307/HRMS/internal/shared/apperror"
	"github.com/krushit1307/HRMS/internal/shared/response"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp opens the configured store, seeds it when empty and returns a router with
// every module registered. The caller owns the returned Resources.
func BuildApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*gin.Engine, *Resources, error) {
	res, err := OpenResources(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := res.Store.InitializeIfAbsent(ctx); err != nil {
		_ = res.Close()
		return nil, nil, err
	}

	router, err := NewRouter(cfg, res, logger)
	if err != nil {
		_ = res.Close()
		return nil, nil, err
	}
	return router, res, nil
}

// NewRouter wires middleware, /health and the /api/v1 modules over already opened resources.
func NewRouter(cfg config.Config, res *Resources, logger *zap.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	corsConfig := cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Authorization",
			"X-Client-Type", middleware.HeaderRequestID, middleware.HeaderIdempotencyKey,
		},
		ExposeHeaders:    []string{middleware.HeaderRequestID, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORSOrigins) == 0 {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		cors.New(corsConfig),
	)

	router.GET("/health", func(c *gin.Context) {
		if _, err := res.Store.Load(c.Request.Context()); err != nil {
			logger.Warn("health check failed", zap.Error(err))
			response.Abort(c, apperror.ErrStoreUnavailable)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok", "backend": cfg.Store.Backend}, nil)
	})

	if err := registerModules(router, cfg, res.Store, res.Redis, logger); err != nil {
		return nil, err
	}
	return router, nil
}
