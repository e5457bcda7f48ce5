package app

import (
	"time"

	"github.com/krushit1307/HRMS/internal/attendance"
	"github.com/krushit1307/HRMS/internal/auth"
	"github.com/krushit1307/HRMS/internal/config"
	"github.com/krushit1307/HRMS/internal/dashboard"
	"github.com/krushit1307/HRMS/internal/leave"
	"github.com/krushit1307/HRMS/internal/payroll"
	"github.com/krushit1307/HRMS/internal/rbac"
	"github.com/krushit1307/HRMS/internal/rbac/infra"
	"github.com/krushit1307/HRMS/internal/shared/token"
	"github.com/krushit1307/HRMS/internal/store"
	"github.com/krushit1307/HRMS/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	s *store.Store,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(rbac.NewRepository(), enforcer, logger)
	if err != nil {
		return err
	}
	tokens := token.NewManager(cfg.JWTSecret, token.WithTTL(cfg.AccessTTL, cfg.RefreshTTL))

	// --- Services ---
	authService := auth.NewService(s, tokens, logger)
	userService := user.NewService(s, logger)
	attendanceService := attendance.NewService(s, time.Now, logger)
	leaveService := leave.NewService(s, logger)
	payrollService := payroll.NewService(s, logger)
	dashboardService := dashboard.NewService(s, rdb, cfg.Redis.Prefix, time.Now, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService,
		auth.WithSecureCookies(cfg.IsProduction()),
		auth.WithCookieMaxAge(int(tokens.AccessTTL().Seconds()), int(tokens.RefreshTTL().Seconds())),
	)
	userHandler := user.NewHandler(userService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	leaveHandler := leave.NewHandler(leaveService)
	payrollHandler := payroll.NewHandler(payrollService)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, tokens, rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
		user.RegisterRoutes(api, userHandler, rbacService, tokens)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, tokens)
		leave.RegisterRoutes(api, leaveHandler, rbacService, tokens, rdb)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, tokens, rdb)
		dashboard.RegisterRoutes(api, dashboardHandler, rbacService, tokens)
		rbac.RegisterRoutes(api, rbacHandler, rbacService, tokens)
	}
	return nil
}
