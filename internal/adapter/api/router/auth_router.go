package router

import (
	"fairshoppe/internal/adapter/api/handler"
	"fairshoppe/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

// SetupAuthRouter initializes auth routes
func SetupAuthRouter(e *echo.Echo, limiter middleware.Limiter) {
	authHandler := handler.GetAuthHandler()

	auth := e.Group("/v1/auth")
	auth.Use(middleware.RateLimit(limiter, "auth"))

	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
}
