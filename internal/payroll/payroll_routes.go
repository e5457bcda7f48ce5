package payroll

import (
	"github.com/krushit1307/HRMS/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	tokens middleware.TokenParser,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	payroll := r.Group("/payroll")
	payroll.Use(middleware.AuthMiddleware(tokens))
	{
		payroll.GET("", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetAll)
		payroll.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetByID)
		payroll.GET("/:id/payslip", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.DownloadPayslip)
		payroll.POST(
			"",
			middleware.Idempotency(redisClient),
			middleware.RBACAuthorize(rbacService, "payroll", "create"),
			handler.Create,
		)
		payroll.PUT("/:id/pay", middleware.RBACAuthorize(rbacService, "payroll", "pay"), handler.MarkAsPaid)
	}
}
