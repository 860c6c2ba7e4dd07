package handler

import (
	"github.com/labstack/echo/v4"

	"fairshoppe/internal/adapter/api/middleware"
	"fairshoppe/internal/usecase"
	"fairshoppe/pkg/errors"
	"fairshoppe/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

type updateProfileRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Address  *string `json:"address"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

func (h *UserHandler) GetMe(c echo.Context) error {
	user, err := h.userUseCase.GetProfile(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) UpdateMe(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), middleware.UserID(c), usecase.UpdateProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Address:  req.Address,
		Password: req.Password,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}
