package rbac

import (
	"github.com/krushit1307/HRMS/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, service Service, tokens middleware.TokenParser) {
	group := r.Group("/rbac")
	group.Use(middleware.AuthMiddleware(tokens))
	{
		group.GET("/permissions", middleware.RBACAuthorize(service, "rbac", "read"), handler.Permissions)
		group.POST("/enforce", middleware.RBACAuthorize(service, "rbac", "manage"), handler.Enforce)
	}
}
