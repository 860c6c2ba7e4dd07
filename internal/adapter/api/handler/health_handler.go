package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"fairshoppe/internal/usecase"
)

type HealthHandler struct {
	catalogUseCase *usecase.CatalogUseCase
}

var healthHandler *HealthHandler

func NewHealthHandler(catalogUseCase *usecase.CatalogUseCase) *HealthHandler {
	return &HealthHandler{
		catalogUseCase: catalogUseCase,
	}
}

func SetupHealthHandler(catalogUseCase *usecase.CatalogUseCase) {
	healthHandler = NewHealthHandler(catalogUseCase)
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	body := map[string]interface{}{
		"status":   "Server is running",
		"time":     time.Now().Format(time.RFC3339),
		"products": len(h.catalogUseCase.List()),
	}
	if err := h.catalogUseCase.LoadErr(); err != nil {
		body["catalog_error"] = err.Error()
	}

	return c.JSON(http.StatusOK, body)
}
