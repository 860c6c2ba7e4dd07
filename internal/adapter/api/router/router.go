package router

import (
	"fairshoppe/internal/adapter/api/handler"
	"fairshoppe/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter middleware.Limiter, wsHandler *handler.WebSocketHandler, uploadBodyLimit string) {
	SetupAuthRouter(e, limiter)
	SetupUserRouter(e, authMiddleware)
	SetupProductRouter(e)
	SetupOrderRouter(e, authMiddleware)
	SetupImageRouter(e, authMiddleware, limiter, uploadBodyLimit)
	SetupProfileRouter(e, authMiddleware)
	SetupWebSocketRouter(e, authMiddleware, wsHandler)
	SetupHealthRouter(e)
}
