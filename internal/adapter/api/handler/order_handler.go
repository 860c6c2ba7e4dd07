package handler

import (
	"github.com/labstack/echo/v4"

	"fairshoppe/internal/adapter/api/middleware"
	"fairshoppe/internal/usecase"
	"fairshoppe/pkg/errors"
	"fairshoppe/pkg/response"
)

type OrderHandler struct {
	orderUseCase *usecase.OrderUseCase
}

func NewOrderHandler(orderUseCase *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
	}
}

func (h *OrderHandler) CreateMockup(c echo.Context) error {
	var input usecase.MockupInput
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	mockup, err := h.orderUseCase.CreateMockup(c.Request().Context(), middleware.UserID(c), input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, mockup)
}

func (h *OrderHandler) GetShopProduct(c echo.Context) error {
	product, err := h.orderUseCase.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *OrderHandler) Quote(c echo.Context) error {
	var input usecase.QuoteInput
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	quote, err := h.orderUseCase.Quote(c.Request().Context(), input)
	if err != nil {
		return response.Error(c, err)
	}

	if len(quote.Warnings) > 0 {
		return response.SuccessWithWarnings(c, quote, quote.Warnings)
	}
	return response.Success(c, quote)
}

func (h *OrderHandler) Checkout(c echo.Context) error {
	var input usecase.CheckoutInput
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	result, err := h.orderUseCase.Checkout(c.Request().Context(), middleware.UserID(c), input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}
