package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fairshoppe/internal/domain/entity"
	"fairshoppe/internal/domain/service"
	"fairshoppe/pkg/errors"
	"fairshoppe/pkg/logger"
	"fairshoppe/pkg/utils"
)

const (
	shippingCountry     = "US"
	shippingCurrency    = "USD"
	shippingUnavailable = "shipping cost unavailable"
	paymentCurrency     = "usd"
)

var validate = validator.New()

type OrderUseCase struct {
	catalog     *CatalogUseCase
	resolver    *VariantResolver
	fulfillment service.FulfillmentService
	payments    service.PaymentGatewayService
	profiles    *ProfileUseCase
}

func NewOrderUseCase(
	catalog *CatalogUseCase,
	resolver *VariantResolver,
	fulfillment service.FulfillmentService,
	payments service.PaymentGatewayService,
	profiles *ProfileUseCase,
) *OrderUseCase {
	return &OrderUseCase{
		catalog:     catalog,
		resolver:    resolver,
		fulfillment: fulfillment,
		payments:    payments,
		profiles:    profiles,
	}
}

type MockupInput struct {
	ProductID int              `json:"product_id" validate:"required"`
	Selection entity.Selection `json:"selection"`
	ImageURL  string           `json:"image_url"`
}

// QuoteInput identifies the line to price. The unit price always comes from
// the catalog; a UnitPrice sent by the client is only checked against it.
type QuoteInput struct {
	BlueprintID int     `json:"blueprint_id" validate:"required"`
	ProviderID  int     `json:"provider_id"`
	VariantID   int     `json:"variant_id" validate:"required"`
	UnitPrice   float64 `json:"unit_price,omitempty" validate:"gte=0"`
	Quantity    int     `json:"quantity" validate:"required,min=1"`
}

type CheckoutInput struct {
	ShopProductID   string              `json:"shop_product_id" validate:"required"`
	BlueprintID     int                 `json:"blueprint_id" validate:"required"`
	ProviderID      int                 `json:"provider_id"`
	VariantID       int                 `json:"variant_id" validate:"required"`
	UnitPrice       float64             `json:"unit_price,omitempty" validate:"gte=0"`
	Quantity        int                 `json:"quantity" validate:"required,min=1"`
	PaymentMethodID string              `json:"payment_method_id" validate:"required"`
	Customer        entity.CustomerInfo `json:"customer"`
	Address         entity.Address      `json:"address"`
	ImageURL        string              `json:"image_url,omitempty"`
}

// CreateMockup uploads the artwork and creates a shop product for the
// resolved variant. Selection problems are reported before any vendor call.
func (uc *OrderUseCase) CreateMockup(ctx context.Context, userID string, input MockupInput) (*entity.Mockup, error) {
	product, err := uc.catalog.Get(input.ProductID)
	if err != nil {
		return nil, err
	}

	resolution, err := uc.resolver.Resolve(product, input.Selection)
	if err != nil {
		return nil, err
	}

	if input.ImageURL == "" {
		return nil, errors.PreconditionFailed("Please generate or upload an image first")
	}

	uploaded, err := uc.fulfillment.UploadImageByURL(ctx, fmt.Sprintf("design-%s.png", uuid.New().String()), input.ImageURL)
	if err != nil {
		return nil, errors.VendorFailure("printify", "Failed to upload image", err)
	}

	variant := resolution.Variant
	providerID := variant.PrintProviderID
	if providerID == 0 {
		providerID = product.PrintProvider.ID
	}

	shopProduct, err := uc.fulfillment.CreateProduct(ctx, service.CreateProductRequest{
		Title:           product.Title,
		Description:     product.Description,
		BlueprintID:     product.ID,
		PrintProviderID: providerID,
		Variants: []service.ShopProductVariant{{
			ID:        variant.VariantID,
			Price:     utils.ToMinorUnits(decimal.NewFromFloat(product.Price)),
			IsEnabled: true,
		}},
		PrintAreas: []service.PrintArea{{
			VariantIDs: []int{variant.VariantID},
			Placeholders: []service.PrintAreaPlaceholder{{
				Position: resolution.Position,
				Images: []service.PlacedImage{{
					ID:    uploaded.ID,
					X:     0.5,
					Y:     0.5,
					Scale: 1,
					Angle: 0,
				}},
			}},
		}},
	})
	if err != nil {
		return nil, errors.VendorFailure("printify", "Failed to create product mockup", err)
	}

	mockup := &entity.Mockup{
		ShopProductID: shopProduct.ID,
		UploadID:      uploaded.ID,
		Images:        mockupImages(shopProduct, variant.VariantID),
		Resolution:    resolution,
		ImageURL:      input.ImageURL,
	}

	recordBestEffort(userID, entity.CategoryDesigns, func() error {
		_, err := uc.profiles.SaveDesign(ctx, userID, entity.Design{
			ProductID: product.ID,
			VariantID: variant.VariantID,
			ImageURL:  input.ImageURL,
			Name:      product.Title,
		})
		return err
	})

	logger.Info("Mockup %s created for blueprint %d variant %d", shopProduct.ID, product.ID, variant.VariantID)
	return mockup, nil
}

// mockupImages prefers the renders of the ordered variant.
func mockupImages(product *service.ShopProduct, variantID int) []string {
	var matched, all []string
	for _, img := range product.Images {
		all = append(all, img.Src)
		for _, id := range img.VariantIDs {
			if id == variantID {
				matched = append(matched, img.Src)
				break
			}
		}
	}
	if len(matched) > 0 {
		return matched
	}
	if all == nil {
		return []string{}
	}
	return all
}

func (uc *OrderUseCase) GetProduct(ctx context.Context, shopProductID string) (*service.ShopProduct, error) {
	if shopProductID == "" {
		return nil, errors.PreconditionFailed("Product id is required")
	}

	product, err := uc.fulfillment.GetProduct(ctx, shopProductID)
	if err != nil {
		var vendorErr *service.VendorHTTPError
		if errors.As(err, &vendorErr) && vendorErr.StatusCode == 404 {
			return nil, errors.NotFound("Shop product", err)
		}
		return nil, errors.VendorFailure("printify", "Failed to load product", err)
	}
	return product, nil
}

// ShippingCost returns the first-item cost for US delivery in major units.
// A table without a matching profile yields zero and a warning.
func (uc *OrderUseCase) ShippingCost(ctx context.Context, providerID, blueprintID, variantID int) (decimal.Decimal, []string, error) {
	table, err := uc.fulfillment.GetShippingTable(ctx, blueprintID, providerID)
	if err != nil {
		return decimal.Zero, nil, errors.VendorFailure("printify", "Failed to load shipping rates", err)
	}

	for _, profile := range table.Profiles {
		if !containsInt(profile.VariantIDs, variantID) || !contains(profile.Countries, shippingCountry) {
			continue
		}
		if !strings.EqualFold(profile.FirstItem.Currency, shippingCurrency) {
			continue
		}
		return utils.FromMinorUnits(profile.FirstItem.Cost), nil, nil
	}

	return decimal.Zero, []string{shippingUnavailable}, nil
}

func (uc *OrderUseCase) Quote(ctx context.Context, input QuoteInput) (*entity.Quote, error) {
	if err := checkInput(input); err != nil {
		return nil, err
	}

	unitPrice, providerID, err := uc.catalogLine(input.BlueprintID, input.ProviderID, input.VariantID, input.UnitPrice)
	if err != nil {
		return nil, err
	}

	shipping, warnings, err := uc.ShippingCost(ctx, providerID, input.BlueprintID, input.VariantID)
	if err != nil {
		logger.Warn("Shipping lookup failed for blueprint %d variant %d: %v", input.BlueprintID, input.VariantID, err)
		shipping = decimal.Zero
		warnings = append(warnings, shippingUnavailable)
	}

	return buildQuote(unitPrice, input.Quantity, shipping, warnings), nil
}

// catalogLine checks that the variant belongs to the blueprint and returns
// the catalog unit price and print provider for it.
func (uc *OrderUseCase) catalogLine(blueprintID, providerID, variantID int, claimedPrice float64) (decimal.Decimal, int, error) {
	product, err := uc.catalog.Get(blueprintID)
	if err != nil {
		return decimal.Zero, 0, errors.PreconditionFailed(fmt.Sprintf("Product %d is not available", blueprintID))
	}

	var variant *entity.Variant
	for i := range product.Variants {
		if product.Variants[i].VariantID == variantID {
			variant = &product.Variants[i]
			break
		}
	}
	if variant == nil {
		return decimal.Zero, 0, errors.PreconditionFailed(fmt.Sprintf("Variant %d does not belong to product %d", variantID, blueprintID))
	}

	price := utils.RoundAmount(decimal.NewFromFloat(product.Price))
	if !price.IsPositive() {
		return decimal.Zero, 0, errors.PreconditionFailed(fmt.Sprintf("Product %d has no price", blueprintID))
	}
	if claimedPrice != 0 && !utils.RoundAmount(decimal.NewFromFloat(claimedPrice)).Equal(price) {
		return decimal.Zero, 0, errors.PreconditionFailed("The price of this product has changed, please review your order")
	}

	catalogProvider := variant.PrintProviderID
	if catalogProvider == 0 {
		catalogProvider = product.PrintProvider.ID
	}
	if providerID != 0 && providerID != catalogProvider {
		return decimal.Zero, 0, errors.PreconditionFailed(fmt.Sprintf("Print provider %d does not offer product %d", providerID, blueprintID))
	}

	return price, catalogProvider, nil
}

func buildQuote(unitPrice decimal.Decimal, quantity int, shipping decimal.Decimal, warnings []string) *entity.Quote {
	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	total := subtotal.Add(shipping)

	return &entity.Quote{
		UnitPrice: utils.FormatAmount(unitPrice),
		Quantity:  quantity,
		Subtotal:  utils.FormatAmount(subtotal),
		Shipping:  utils.FormatAmount(shipping),
		Total:     utils.FormatAmount(total),
		Warnings:  warnings,
	}
}

// Checkout charges the card and then submits the fulfillment order. There is
// no compensation: an order failure after a successful charge is reported
// with the payment id so support can reconcile it.
func (uc *OrderUseCase) Checkout(ctx context.Context, userID string, input CheckoutInput) (*entity.CheckoutResult, error) {
	if err := checkInput(input); err != nil {
		return nil, err
	}

	quote, err := uc.Quote(ctx, QuoteInput{
		BlueprintID: input.BlueprintID,
		ProviderID:  input.ProviderID,
		VariantID:   input.VariantID,
		UnitPrice:   input.UnitPrice,
		Quantity:    input.Quantity,
	})
	if err != nil {
		return nil, err
	}
	total := decimal.RequireFromString(quote.Total)

	payment, err := uc.payments.CreatePayment(ctx, service.PaymentRequest{
		Amount:          total,
		Currency:        paymentCurrency,
		PaymentMethodID: input.PaymentMethodID,
		Description:     fmt.Sprintf("Order for product %s", input.ShopProductID),
		Customer:        input.Customer,
		Shipping:        input.Address,
	})
	if err != nil {
		return nil, errors.PaymentFailed("Payment could not be completed", err)
	}
	if !payment.Succeeded {
		msg := "Payment was not completed"
		if payment.FailureCause != "" {
			msg = payment.FailureCause
		}
		logger.Warn("Payment %s ended in status %s", payment.ID, payment.Status)
		return nil, errors.PaymentFailed(msg, nil)
	}

	firstName, lastName := splitName(input.Customer.Name)
	order, err := uc.fulfillment.CreateOrder(ctx, service.CreateOrderRequest{
		ExternalID: payment.ID,
		Label:      input.ShopProductID,
		LineItems: []service.OrderLineItem{{
			ProductID: input.ShopProductID,
			VariantID: input.VariantID,
			Quantity:  input.Quantity,
		}},
		ShippingMethod:           1,
		SendShippingNotification: false,
		AddressTo: service.OrderAddress{
			FirstName: firstName,
			LastName:  lastName,
			Email:     input.Customer.Email,
			Phone:     input.Customer.Phone,
			Country:   input.Address.Country,
			Region:    input.Address.State,
			Address1:  input.Address.Line1,
			Address2:  input.Address.Line2,
			City:      input.Address.City,
			Zip:       input.Address.PostalCode,
		},
	})
	if err != nil {
		logger.Error("Order creation failed after payment %s was captured: %v", payment.ID, err)
		return nil, errors.OrderAfterPayment(payment.ID, err)
	}

	recordBestEffort(userID, entity.CategoryOrders, func() error {
		_, err := uc.profiles.SaveOrder(ctx, userID, entity.Order{
			OrderID:         order.ID,
			ProductID:       input.BlueprintID,
			VariantID:       input.VariantID,
			Quantity:        input.Quantity,
			Price:           total.InexactFloat64(),
			Status:          "pending",
			ShippingAddress: formatAddress(input.Address),
			ImageURL:        input.ImageURL,
		})
		return err
	})

	logger.Info("Order %s created for payment %s", order.ID, payment.ID)
	return &entity.CheckoutResult{
		PaymentID: payment.ID,
		OrderID:   order.ID,
		Total:     quote.Total,
		Status:    "submitted",
	}, nil
}

// checkInput reports incomplete checkout data as a missing precondition so
// nothing is sent to a vendor.
func checkInput(input interface{}) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errors.Internal("Failed to validate input", err)
	}

	fields := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, fe.Namespace())
	}

	appErr := errors.PreconditionFailed("Please complete all required fields: " + strings.Join(fields, ", "))
	appErr.Details = map[string]interface{}{"fields": fields}
	return appErr
}

func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

func formatAddress(a entity.Address) string {
	parts := []string{a.Line1}
	if a.Line2 != "" {
		parts = append(parts, a.Line2)
	}
	parts = append(parts, a.City, a.State+" "+a.PostalCode, a.Country)
	return strings.Join(parts, ", ")
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
