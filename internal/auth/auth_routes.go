package auth

import (
	"github.com/krushit1307/HRMS/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RegisterRoutes mounts /auth. loginRPS and loginBurst limit login and register per client IP.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, tokens middleware.TokenParser, loginRPS rate.Limit, loginBurst int) {
	auth := r.Group("/auth")
	{
		auth.GET("/me", middleware.AuthMiddleware(tokens), middleware.RateLimitByUser(2, 5), handler.Me)
		auth.POST("/login", middleware.RateLimitByIP(loginRPS, loginBurst), handler.Login)
		auth.POST("/register", middleware.RateLimitByIP(loginRPS, loginBurst), handler.Register)
		auth.POST("/refresh", handler.RefreshToken)
		auth.POST("/logout", handler.Logout)
	}
}
