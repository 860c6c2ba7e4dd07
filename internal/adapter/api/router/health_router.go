package router

import (
	"fairshoppe/internal/adapter/api/handler"
	"fairshoppe/internal/infrastructure/metrics"

	"github.com/labstack/echo/v4"
)

func SetupHealthRouter(e *echo.Echo) {
	healthHandler := handler.GetHealthHandler()
	e.GET("/health", healthHandler.CheckHealth)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
}
