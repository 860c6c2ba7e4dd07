package router

import (
	"github.com/labstack/echo/v4"

	"fairshoppe/internal/adapter/api/handler"
	"fairshoppe/internal/adapter/api/middleware"
)

// SetupWebSocketRouter sets up the job progress socket. Token checking
// falls back to the query string inside the handler.
func SetupWebSocketRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, wsHandler *handler.WebSocketHandler) {
	e.GET("/v1/ws", wsHandler.HandleWebSocket, authMiddleware.OptionalAuth)
}
