package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"fairshoppe/internal/domain/entity"
	"fairshoppe/internal/usecase"
	"fairshoppe/pkg/errors"
	"fairshoppe/pkg/response"
)

type ProductHandler struct {
	catalogUseCase *usecase.CatalogUseCase
	resolver       *usecase.VariantResolver
}

func NewProductHandler(catalogUseCase *usecase.CatalogUseCase, resolver *usecase.VariantResolver) *ProductHandler {
	return &ProductHandler{
		catalogUseCase: catalogUseCase,
		resolver:       resolver,
	}
}

func productID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, errors.BadRequest("Invalid product id", err)
	}
	return id, nil
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	return response.Success(c, h.catalogUseCase.List())
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return response.Error(c, err)
	}

	detail, err := h.catalogUseCase.Detail(id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, detail)
}

func (h *ProductHandler) ResolveVariant(c echo.Context) error {
	id, err := productID(c)
	if err != nil {
		return response.Error(c, err)
	}

	var sel entity.Selection
	if err := c.Bind(&sel); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	product, err := h.catalogUseCase.Get(id)
	if err != nil {
		return response.Error(c, err)
	}

	resolution, err := h.resolver.Resolve(product, sel)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, resolution)
}
