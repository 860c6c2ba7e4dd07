package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"fairshoppe/internal/domain/entity"
	"fairshoppe/pkg/logger"
)

const printifyVendor = "printify"

// PrintifyFulfillmentService talks to the Printify REST API with a bearer token.
type PrintifyFulfillmentService struct {
	apiKey  string
	shopID  string
	baseURL string
	client  *http.Client
}

func NewPrintifyFulfillmentService(apiKey, shopID, baseURL string) *PrintifyFulfillmentService {
	if baseURL == "" {
		baseURL = "https://api.printify.com"
	}

	return &PrintifyFulfillmentService{
		apiKey:  apiKey,
		shopID:  shopID,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: vendorTimeout},
	}
}

// Configured reports whether credentials are present; callers check this
// before any network call.
func (s *PrintifyFulfillmentService) Configured() bool {
	return s.apiKey != "" && s.shopID != ""
}

func (s *PrintifyFulfillmentService) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + s.apiKey,
		"User-Agent":    "fairshoppe",
	}
}

func (s *PrintifyFulfillmentService) GetProduct(ctx context.Context, productID string) (*ShopProduct, error) {
	body, err := doVendorRequest(ctx, s.client, vendorRequest{
		vendor:    printifyVendor,
		operation: "get_product",
		method:    http.MethodGet,
		url:       fmt.Sprintf("%s/v1/shops/%s/products/%s.json", s.baseURL, s.shopID, url.PathEscape(productID)),
		headers:   s.headers(),
	})
	if err != nil {
		return nil, err
	}

	var product ShopProduct
	if err := json.Unmarshal(body, &product); err != nil {
		return nil, fmt.Errorf("failed to parse product: %v", err)
	}
	return &product, nil
}

func (s *PrintifyFulfillmentService) GetShippingTable(ctx context.Context, blueprintID, printProviderID int) (*entity.ShippingTable, error) {
	body, err := doVendorRequest(ctx, s.client, vendorRequest{
		vendor:    printifyVendor,
		operation: "get_shipping",
		method:    http.MethodGet,
		url:       fmt.Sprintf("%s/v1/catalog/blueprints/%d/print_providers/%d/shipping.json", s.baseURL, blueprintID, printProviderID),
		headers:   s.headers(),
	})
	if err != nil {
		return nil, err
	}

	var table entity.ShippingTable
	if err := json.Unmarshal(body, &table); err != nil {
		return nil, fmt.Errorf("failed to parse shipping table: %v", err)
	}
	logger.Debug("Shipping table for blueprint %d provider %d has %d profiles", blueprintID, printProviderID, len(table.Profiles))
	return &table, nil
}

func (s *PrintifyFulfillmentService) UploadImageByURL(ctx context.Context, fileName, imageURL string) (*UploadedImage, error) {
	body, err := doVendorRequest(ctx, s.client, vendorRequest{
		vendor:    printifyVendor,
		operation: "upload_image",
		method:    http.MethodPost,
		url:       s.baseURL + "/v1/uploads/images.json",
		headers:   s.headers(),
		payload: map[string]string{
			"file_name": fileName,
			"url":       imageURL,
		},
	})
	if err != nil {
		return nil, err
	}

	var uploaded UploadedImage
	if err := json.Unmarshal(body, &uploaded); err != nil {
		return nil, fmt.Errorf("failed to parse upload response: %v", err)
	}
	if uploaded.ID == "" {
		return nil, fmt.Errorf("upload response carried no image id")
	}
	return &uploaded, nil
}

func (s *PrintifyFulfillmentService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ShopProduct, error) {
	body, err := doVendorRequest(ctx, s.client, vendorRequest{
		vendor:    printifyVendor,
		operation: "create_product",
		method:    http.MethodPost,
		url:       fmt.Sprintf("%s/v1/shops/%s/products.json", s.baseURL, s.shopID),
		headers:   s.headers(),
		payload:   req,
	})
	if err != nil {
		return nil, err
	}

	var product ShopProduct
	if err := json.Unmarshal(body, &product); err != nil {
		return nil, fmt.Errorf("failed to parse product: %v", err)
	}
	return &product, nil
}

func (s *PrintifyFulfillmentService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreatedOrder, error) {
	body, err := doVendorRequest(ctx, s.client, vendorRequest{
		vendor:    printifyVendor,
		operation: "create_order",
		method:    http.MethodPost,
		url:       fmt.Sprintf("%s/v1/shops/%s/orders.json", s.baseURL, s.shopID),
		headers:   s.headers(),
		payload:   req,
	})
	if err != nil {
		return nil, err
	}

	var order CreatedOrder
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("failed to parse order: %v", err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("order response carried no id")
	}
	return &order, nil
}
