package attendance

import (
	"github.com/krushit1307/HRMS/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService, tokens middleware.TokenParser) {
	attendance := r.Group("/attendance")
	attendance.Use(middleware.AuthMiddleware(tokens))
	{
		attendance.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetAll)
		attendance.GET("/today", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.Today)
		attendance.POST("/check-in", middleware.RBACAuthorize(rbacService, "attendance", "create"), h.CheckIn)
		attendance.POST("/check-out", middleware.RBACAuthorize(rbacService, "attendance", "create"), h.CheckOut)
	}
}
