package router

import (
	"fairshoppe/internal/adapter/api/handler"
	"fairshoppe/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupOrderRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	orderHandler := handler.GetOrderHandler()

	e.GET("/v1/shop-products/:id", orderHandler.GetShopProduct)
	e.POST("/v1/quotes", orderHandler.Quote)

	protected := e.Group("/v1")
	protected.Use(authMiddleware.Authenticate)
	protected.POST("/mockups", orderHandler.CreateMockup)
	protected.POST("/checkout", orderHandler.Checkout)
}
