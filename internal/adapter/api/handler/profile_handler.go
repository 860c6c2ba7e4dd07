package handler

import (
	"github.com/labstack/echo/v4"

	"fairshoppe/internal/adapter/api/middleware"
	"fairshoppe/internal/domain/entity"
	"fairshoppe/internal/usecase"
	"fairshoppe/pkg/response"
)

type ProfileHandler struct {
	profileUseCase *usecase.ProfileUseCase
}

func NewProfileHandler(profileUseCase *usecase.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
	}
}

// GetProfileData returns every saved category for the caller.
func (h *ProfileHandler) GetProfileData(c echo.Context) error {
	data, err := h.profileUseCase.Load(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, data)
}

func (h *ProfileHandler) GetCategory(c echo.Context) error {
	category := entity.ProfileCategory(c.Param("category"))

	records, err := h.profileUseCase.GetCategory(c.Request().Context(), middleware.UserID(c), category)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, records)
}
