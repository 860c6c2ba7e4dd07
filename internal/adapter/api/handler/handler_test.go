package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairshoppe/internal/adapter/api"
	"fairshoppe/internal/domain/entity"
	"fairshoppe/internal/domain/service"
	"fairshoppe/internal/infrastructure/catalog"
	"fairshoppe/internal/usecase"
)

var supported = usecase.SupportedCatalog{
	IDs:       []int{145, 9, 74, 1048, 937},
	Prices:    []float64{19.99, 24.99, 14.99, 19.99, 24.99},
	CandleIDs: []int{1048},
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Warnings []string `json:"warnings"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = api.NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// shippingDown fails every fulfillment call.
type shippingDown struct{}

func (shippingDown) GetProduct(context.Context, string) (*service.ShopProduct, error) {
	return nil, &service.VendorHTTPError{Vendor: "printify", StatusCode: http.StatusNotFound}
}

func (shippingDown) GetShippingTable(context.Context, int, int) (*entity.ShippingTable, error) {
	return nil, &service.VendorHTTPError{Vendor: "printify", StatusCode: http.StatusInternalServerError}
}

func (shippingDown) UploadImageByURL(context.Context, string, string) (*service.UploadedImage, error) {
	return nil, &service.VendorHTTPError{Vendor: "printify", StatusCode: http.StatusInternalServerError}
}

func (shippingDown) CreateProduct(context.Context, service.CreateProductRequest) (*service.ShopProduct, error) {
	return nil, &service.VendorHTTPError{Vendor: "printify", StatusCode: http.StatusInternalServerError}
}

func (shippingDown) CreateOrder(context.Context, service.CreateOrderRequest) (*service.CreatedOrder, error) {
	return nil, &service.VendorHTTPError{Vendor: "printify", StatusCode: http.StatusInternalServerError}
}

func TestHealthCheck(t *testing.T) {
	h := NewHealthHandler(usecase.NewCatalogUseCase(catalog.Bundled(), supported))
	c, rec := newContext(http.MethodGet, "/health", "")

	require.NoError(t, h.CheckHealth(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Server is running")
	assert.NotContains(t, rec.Body.String(), "catalog_error")
}

func TestListProducts(t *testing.T) {
	h := NewProductHandler(usecase.NewCatalogUseCase(catalog.Bundled(), supported), usecase.NewVariantResolver())
	c, rec := newContext(http.MethodGet, "/v1/products", "")

	require.NoError(t, h.ListProducts(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var products []entity.Product
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &products))
	require.NotEmpty(t, products)
	assert.Equal(t, 145, products[0].ID)
}

func TestGetProductErrors(t *testing.T) {
	h := NewProductHandler(usecase.NewCatalogUseCase(catalog.Bundled(), supported), usecase.NewVariantResolver())

	c, rec := newContext(http.MethodGet, "/v1/products/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, h.GetProduct(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newContext(http.MethodGet, "/v1/products/500", "")
	c.SetParamNames("id")
	c.SetParamValues("500")
	require.NoError(t, h.GetProduct(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResolveVariant(t *testing.T) {
	h := NewProductHandler(usecase.NewCatalogUseCase(catalog.Bundled(), supported), usecase.NewVariantResolver())

	c, rec := newContext(http.MethodPost, "/v1/products/145/resolve", `{"style":"Red","size":"M"}`)
	c.SetParamNames("id")
	c.SetParamValues("145")
	require.NoError(t, h.ResolveVariant(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var res entity.Resolution
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &res))
	require.NotNil(t, res.Variant)
	assert.Equal(t, 38192, res.Variant.VariantID)
	assert.Equal(t, "front", res.Position)
	assert.Equal(t, 4919, res.VariantSize)

	c, rec = newContext(http.MethodPost, "/v1/products/145/resolve", `{"style":"Green","size":"M"}`)
	c.SetParamNames("id")
	c.SetParamValues("145")
	require.NoError(t, h.ResolveVariant(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "MISSING_PRECONDITION", decode(t, rec).Error.Code)
}

func newOrderHandler() *OrderHandler {
	catalogUseCase := usecase.NewCatalogUseCase(catalog.Bundled(), supported)
	return NewOrderHandler(usecase.NewOrderUseCase(catalogUseCase, usecase.NewVariantResolver(), shippingDown{}, nil, nil))
}

func TestQuoteDegradesWhenShippingUnavailable(t *testing.T) {
	h := newOrderHandler()
	c, rec := newContext(http.MethodPost, "/v1/quotes",
		`{"blueprint_id":145,"provider_id":99,"variant_id":38192,"unit_price":19.99,"quantity":3}`)

	require.NoError(t, h.Quote(c))
	require.Equal(t, http.StatusOK, rec.Code)

	env := decode(t, rec)
	assert.NotEmpty(t, env.Warnings)

	var quote entity.Quote
	require.NoError(t, json.Unmarshal(env.Data, &quote))
	assert.Equal(t, "59.97", quote.Subtotal)
	assert.Equal(t, "0.00", quote.Shipping)
	assert.Equal(t, "59.97", quote.Total)
}

func TestQuoteRejectsZeroQuantity(t *testing.T) {
	h := newOrderHandler()
	c, rec := newContext(http.MethodPost, "/v1/quotes",
		`{"blueprint_id":145,"provider_id":99,"variant_id":38192,"unit_price":19.99,"quantity":0}`)

	require.NoError(t, h.Quote(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestShopProductNotFound(t *testing.T) {
	h := newOrderHandler()
	c, rec := newContext(http.MethodGet, "/v1/shop-products/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	require.NoError(t, h.GetShopProduct(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadWithoutFile(t *testing.T) {
	h := NewImageHandler(usecase.NewImageUseCase(nil, nil, nil, nil, usecase.ImageOptions{}))
	c, rec := newContext(http.MethodPost, "/v1/images/upload", "")

	require.NoError(t, h.Upload(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRemoveBackgroundNeedsImage(t *testing.T) {
	h := NewImageHandler(usecase.NewImageUseCase(nil, nil, nil, nil, usecase.ImageOptions{}))
	c, rec := newContext(http.MethodPost, "/v1/images/remove-background", `{}`)

	require.NoError(t, h.RemoveBackground(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSignupValidation(t *testing.T) {
	h := NewAuthHandler(usecase.NewAuthUseCase(nil, nil))
	c, rec := newContext(http.MethodPost, "/v1/auth/signup", `{"name":"Ann","email":"not-an-email","password":"longenough"}`)

	require.NoError(t, h.Signup(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
