package leave

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

	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware(tokens))
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetAll)
		leaves.GET("/pending", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Pending)
		leaves.POST(
			"",
			middleware.Idempotency(redisClient),
			middleware.RBACAuthorize(rbacService, "leave", "create"),
			handler.Apply,
		)
		leaves.PUT("/:id/approve", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Approve)
		leaves.PUT("/:id/reject", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Reject)
	}
}
