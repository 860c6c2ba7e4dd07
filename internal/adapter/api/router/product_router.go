package router

import (
	"fairshoppe/internal/adapter/api/handler"

	"github.com/labstack/echo/v4"
)

func SetupProductRouter(e *echo.Echo) {
	productHandler := handler.GetProductHandler()

	products := e.Group("/v1/products")
	products.GET("", productHandler.ListProducts)
	products.GET("/:id", productHandler.GetProduct)
	products.POST("/:id/resolve", productHandler.ResolveVariant)
}
