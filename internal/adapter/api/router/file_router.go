package router

import (
	"fairshoppe/internal/adapter/api/handler"

	"github.com/labstack/echo/v4"
)

// SetupFileRouter serves uploads kept by the in-memory object store under
// the base URL it hands out.
func SetupFileRouter(e *echo.Echo, fileHandler *handler.FileHandler) {
	e.GET("/files/*", fileHandler.Serve)
}
