package service

import (
	"context"

	"fairshoppe/internal/domain/entity"
)

type ShopProductImage struct {
	Src        string `json:"src"`
	VariantIDs []int  `json:"variant_ids"`
	Position   string `json:"position"`
	IsDefault  bool   `json:"is_default"`
}

type ShopProductVariant struct {
	ID        int    `json:"id"`
	Title     string `json:"title,omitempty"`
	Price     int64  `json:"price"` // cents
	IsEnabled bool   `json:"is_enabled"`
}

// ShopProduct is a sellable product created in the fulfillment shop.
type ShopProduct struct {
	ID              string               `json:"id"`
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	BlueprintID     int                  `json:"blueprint_id"`
	PrintProviderID int                  `json:"print_provider_id"`
	Variants        []ShopProductVariant `json:"variants"`
	Images          []ShopProductImage   `json:"images"`
}

type UploadedImage struct {
	ID         string `json:"id"`
	FileName   string `json:"file_name"`
	PreviewURL string `json:"preview_url"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
}

type PlacedImage struct {
	ID    string  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Scale float64 `json:"scale"`
	Angle int     `json:"angle"`
}

type PrintAreaPlaceholder struct {
	Position string        `json:"position"`
	Images   []PlacedImage `json:"images"`
}

type PrintArea struct {
	VariantIDs   []int                  `json:"variant_ids"`
	Placeholders []PrintAreaPlaceholder `json:"placeholders"`
}

type CreateProductRequest struct {
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	BlueprintID     int                  `json:"blueprint_id"`
	PrintProviderID int                  `json:"print_provider_id"`
	Variants        []ShopProductVariant `json:"variants"`
	PrintAreas      []PrintArea          `json:"print_areas"`
}

type OrderLineItem struct {
	ProductID string `json:"product_id"`
	VariantID int    `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

type OrderAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Country   string `json:"country"`
	Region    string `json:"region"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	Zip       string `json:"zip"`
}

type CreateOrderRequest struct {
	ExternalID               string          `json:"external_id"`
	Label                    string          `json:"label,omitempty"`
	LineItems                []OrderLineItem `json:"line_items"`
	ShippingMethod           int             `json:"shipping_method"`
	SendShippingNotification bool            `json:"send_shipping_notification"`
	AddressTo                OrderAddress    `json:"address_to"`
}

type CreatedOrder struct {
	ID string `json:"id"`
}

type FulfillmentService interface {
	GetProduct(ctx context.Context, productID string) (*ShopProduct, error)
	GetShippingTable(ctx context.Context, blueprintID, printProviderID int) (*entity.ShippingTable, error)
	UploadImageByURL(ctx context.Context, fileName, imageURL string) (*UploadedImage, error)
	CreateProduct(ctx context.Context, req CreateProductRequest) (*ShopProduct, error)
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreatedOrder, error)
}
