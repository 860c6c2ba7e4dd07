package router

import (
	"fairshoppe/internal/adapter/api/handler"
	"fairshoppe/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupProfileRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	profileHandler := handler.GetProfileHandler()

	profile := e.Group("/v1/profile")
	profile.Use(authMiddleware.Authenticate)

	profile.GET("/data", profileHandler.GetProfileData)
	profile.GET("/data/:category", profileHandler.GetCategory)
}
