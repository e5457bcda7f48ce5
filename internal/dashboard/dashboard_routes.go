package dashboard

import (
	"github.com/krushit1307/HRMS/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, tokens middleware.TokenParser) {
	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.AuthMiddleware(tokens))
	{
		dashboard.GET("/summary", middleware.RBACAuthorize(rbacService, "dashboard", "read"), handler.Summary)
	}
}
