package router

import (
	"fairshoppe/internal/adapter/api/handler"
	"fairshoppe/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// SetupImageRouter lets anonymous users generate and edit images; their
// results are just not saved to a profile.
func SetupImageRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter middleware.Limiter, bodyLimit string) {
	imageHandler := handler.GetImageHandler()

	images := e.Group("/v1/images")
	if bodyLimit != "" {
		images.Use(echomw.BodyLimit(bodyLimit))
	}
	images.Use(authMiddleware.OptionalAuth)

	images.POST("/generate", imageHandler.Generate, middleware.RateLimit(limiter, "generate"))
	images.POST("/remove-background", imageHandler.RemoveBackground, middleware.RateLimit(limiter, "remove_background"))
	images.POST("/upload", imageHandler.Upload, middleware.RateLimit(limiter, "upload"))
	images.POST("/compose", imageHandler.Compose)
}
