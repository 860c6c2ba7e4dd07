package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairshoppe/internal/domain/entity"
	"fairshoppe/internal/domain/service"
	"fairshoppe/internal/infrastructure/catalog"
	"fairshoppe/pkg/errors"
)

func shippingTable() *entity.ShippingTable {
	return &entity.ShippingTable{Profiles: []entity.ShippingProfile{
		{VariantIDs: []int{100, 38192}, Countries: []string{"US"}, FirstItem: entity.ShippingCost{Cost: 500, Currency: "USD"}},
		{VariantIDs: []int{200}, Countries: []string{"CA"}, FirstItem: entity.ShippingCost{Cost: 900, Currency: "USD"}},
	}}
}

func newOrderUseCase(f *fakeFulfillment, p *fakePayments, repo *memoryProfileRepo) *OrderUseCase {
	return NewOrderUseCase(
		NewCatalogUseCase(catalog.Bundled(), testSupported),
		NewVariantResolver(),
		f,
		p,
		NewProfileUseCase(repo),
	)
}

func validCheckout() CheckoutInput {
	return CheckoutInput{
		ShopProductID:   "prod_1",
		BlueprintID:     145,
		ProviderID:      99,
		VariantID:       38192,
		UnitPrice:       19.99,
		Quantity:        3,
		PaymentMethodID: "pm_card_visa",
		Customer:        entity.CustomerInfo{Name: "Ada King Lovelace", Email: "ada@example.com", Phone: "555-0100"},
		Address: entity.Address{
			Line1: "1 Main St", City: "Springfield", State: "IL", PostalCode: "62701", Country: "US",
		},
	}
}

func TestShippingCost(t *testing.T) {
	uc := newOrderUseCase(&fakeFulfillment{table: shippingTable()}, &fakePayments{}, newMemoryProfileRepo())

	cost, warnings, err := uc.ShippingCost(context.Background(), 99, 145, 100)
	require.NoError(t, err)
	assert.True(t, cost.Equal(decimal.RequireFromString("5.00")))
	assert.Empty(t, warnings)

	cost, warnings, err = uc.ShippingCost(context.Background(), 99, 145, 200)
	require.NoError(t, err)
	assert.True(t, cost.IsZero())
	assert.Equal(t, []string{shippingUnavailable}, warnings)
}

func TestQuoteTotals(t *testing.T) {
	uc := newOrderUseCase(&fakeFulfillment{table: shippingTable()}, &fakePayments{}, newMemoryProfileRepo())

	quote, err := uc.Quote(context.Background(), QuoteInput{BlueprintID: 145, ProviderID: 99, VariantID: 38192, UnitPrice: 19.99, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, "19.99", quote.UnitPrice)
	assert.Equal(t, "59.97", quote.Subtotal)
	assert.Equal(t, "5.00", quote.Shipping)
	assert.Equal(t, "64.97", quote.Total)
}

func TestQuoteShippingFailureIsWarning(t *testing.T) {
	uc := newOrderUseCase(&fakeFulfillment{shippingErr: fmt.Errorf("connection refused")}, &fakePayments{}, newMemoryProfileRepo())

	quote, err := uc.Quote(context.Background(), QuoteInput{BlueprintID: 145, ProviderID: 99, VariantID: 38192, UnitPrice: 19.99, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, "0.00", quote.Shipping)
	assert.Equal(t, "59.97", quote.Total)
	assert.Contains(t, quote.Warnings, shippingUnavailable)
}

func TestQuoteRejectsZeroQuantity(t *testing.T) {
	f := &fakeFulfillment{}
	uc := newOrderUseCase(f, &fakePayments{}, newMemoryProfileRepo())

	_, err := uc.Quote(context.Background(), QuoteInput{BlueprintID: 145, ProviderID: 99, VariantID: 38192, UnitPrice: 19.99})
	assert.True(t, errors.Is(err, "MISSING_PRECONDITION"))
	assert.Empty(t, f.calls)
}

func TestQuoteUsesCatalogPrice(t *testing.T) {
	uc := newOrderUseCase(&fakeFulfillment{table: shippingTable()}, &fakePayments{}, newMemoryProfileRepo())

	quote, err := uc.Quote(context.Background(), QuoteInput{BlueprintID: 145, VariantID: 38192, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, "19.99", quote.UnitPrice)
	assert.Equal(t, "44.98", quote.Total)
}

func TestQuoteRejectsLinesOutsideCatalog(t *testing.T) {
	cases := map[string]QuoteInput{
		"tampered price":   {BlueprintID: 145, ProviderID: 99, VariantID: 38192, UnitPrice: 0.01, Quantity: 1},
		"foreign variant":  {BlueprintID: 145, ProviderID: 99, VariantID: 123456789, UnitPrice: 19.99, Quantity: 1},
		"candle variant":   {BlueprintID: 145, ProviderID: 99, VariantID: 95101, Quantity: 1},
		"wrong provider":   {BlueprintID: 145, ProviderID: 70, VariantID: 38192, Quantity: 1},
		"unsupported item": {BlueprintID: 500, VariantID: 1, Quantity: 1},
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			f := &fakeFulfillment{table: shippingTable()}
			uc := newOrderUseCase(f, &fakePayments{}, newMemoryProfileRepo())

			_, err := uc.Quote(context.Background(), input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, "MISSING_PRECONDITION"))
			assert.Empty(t, f.calls)
		})
	}
}

func TestCreateMockup(t *testing.T) {
	f := &fakeFulfillment{}
	repo := newMemoryProfileRepo()
	uc := newOrderUseCase(f, &fakePayments{}, repo)

	mockup, err := uc.CreateMockup(context.Background(), "user-1", MockupInput{
		ProductID: 145,
		Selection: entity.Selection{Style: "Red", Size: "M"},
		ImageURL:  "https://cdn.example.com/art.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "prod_1", mockup.ShopProductID)
	assert.Equal(t, []string{"https://images/front.png"}, mockup.Images)
	assert.Equal(t, 38192, mockup.Resolution.Variant.VariantID)

	req := f.lastProduct
	assert.Equal(t, 145, req.BlueprintID)
	assert.Equal(t, 99, req.PrintProviderID)
	assert.Equal(t, int64(1999), req.Variants[0].Price)
	assert.True(t, req.Variants[0].IsEnabled)
	placed := req.PrintAreas[0].Placeholders[0]
	assert.Equal(t, "front", placed.Position)
	assert.Equal(t, service.PlacedImage{ID: "img_1", X: 0.5, Y: 0.5, Scale: 1, Angle: 0}, placed.Images[0])

	assert.Equal(t, 1, repo.count("user-1", entity.CategoryDesigns))
}

func TestCreateMockupPreconditions(t *testing.T) {
	f := &fakeFulfillment{}
	uc := newOrderUseCase(f, &fakePayments{}, newMemoryProfileRepo())

	_, err := uc.CreateMockup(context.Background(), "user-1", MockupInput{
		ProductID: 145,
		Selection: entity.Selection{Style: "Green", Size: "M"},
		ImageURL:  "https://cdn.example.com/art.png",
	})
	assert.True(t, errors.Is(err, "MISSING_PRECONDITION"))

	_, err = uc.CreateMockup(context.Background(), "user-1", MockupInput{
		ProductID: 145,
		Selection: entity.Selection{Style: "Red", Size: "M"},
	})
	assert.True(t, errors.Is(err, "MISSING_PRECONDITION"))
	assert.Empty(t, f.calls)
}

func TestCreateMockupVendorFailure(t *testing.T) {
	f := &fakeFulfillment{productErr: &service.VendorHTTPError{Vendor: "printify", StatusCode: 500}}
	repo := newMemoryProfileRepo()
	uc := newOrderUseCase(f, &fakePayments{}, repo)

	_, err := uc.CreateMockup(context.Background(), "user-1", MockupInput{
		ProductID: 145,
		Selection: entity.Selection{Style: "Red", Size: "M"},
		ImageURL:  "https://cdn.example.com/art.png",
	})
	assert.True(t, errors.Is(err, "VENDOR_ERROR"))
	assert.Equal(t, 0, repo.count("user-1", entity.CategoryDesigns))
}

func TestCheckoutSuccess(t *testing.T) {
	f := &fakeFulfillment{table: shippingTable()}
	p := &fakePayments{}
	repo := newMemoryProfileRepo()
	uc := newOrderUseCase(f, p, repo)

	result, err := uc.Checkout(context.Background(), "user-1", validCheckout())
	require.NoError(t, err)
	assert.Equal(t, "pi_1", result.PaymentID)
	assert.Equal(t, "order_1", result.OrderID)
	assert.Equal(t, "64.97", result.Total)

	assert.True(t, p.last.Amount.Equal(decimal.RequireFromString("64.97")))
	assert.Equal(t, "usd", p.last.Currency)

	assert.Equal(t, "pi_1", f.lastOrder.ExternalID)
	assert.Equal(t, "Ada", f.lastOrder.AddressTo.FirstName)
	assert.Equal(t, "King Lovelace", f.lastOrder.AddressTo.LastName)
	assert.Equal(t, 3, f.lastOrder.LineItems[0].Quantity)
	assert.Equal(t, 1, repo.count("user-1", entity.CategoryOrders))
}

func TestCheckoutValidatesBeforeNetwork(t *testing.T) {
	f := &fakeFulfillment{table: shippingTable()}
	p := &fakePayments{}
	uc := newOrderUseCase(f, p, newMemoryProfileRepo())

	input := validCheckout()
	input.Address.City = ""
	input.Customer.Email = "not-an-email"

	_, err := uc.Checkout(context.Background(), "user-1", input)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "MISSING_PRECONDITION"))
	assert.Empty(t, f.calls)
	assert.Equal(t, 0, p.calls)
}

func TestCheckoutRefusesTamperedLine(t *testing.T) {
	tampered := validCheckout()
	tampered.UnitPrice = 0.01
	tampered.Quantity = 1

	foreign := validCheckout()
	foreign.VariantID = 123456789

	for name, input := range map[string]CheckoutInput{"tampered price": tampered, "foreign variant": foreign} {
		t.Run(name, func(t *testing.T) {
			f := &fakeFulfillment{table: shippingTable()}
			p := &fakePayments{}
			uc := newOrderUseCase(f, p, newMemoryProfileRepo())

			_, err := uc.Checkout(context.Background(), "user-1", input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, "MISSING_PRECONDITION"))
			assert.Equal(t, 0, p.calls)
			assert.NotContains(t, f.calls, "create_order")
		})
	}
}

func TestCheckoutChargesCatalogPriceWithoutClientPrice(t *testing.T) {
	p := &fakePayments{}
	uc := newOrderUseCase(&fakeFulfillment{table: shippingTable()}, p, newMemoryProfileRepo())

	input := validCheckout()
	input.UnitPrice = 0
	input.ProviderID = 0

	result, err := uc.Checkout(context.Background(), "user-1", input)
	require.NoError(t, err)
	assert.Equal(t, "64.97", result.Total)
	assert.True(t, p.last.Amount.Equal(decimal.RequireFromString("64.97")))
}

func TestCheckoutPaymentFailures(t *testing.T) {
	f := &fakeFulfillment{table: shippingTable()}
	uc := newOrderUseCase(f, &fakePayments{err: fmt.Errorf("card declined")}, newMemoryProfileRepo())

	_, err := uc.Checkout(context.Background(), "user-1", validCheckout())
	assert.True(t, errors.Is(err, "PAYMENT_FAILED"))
	assert.NotContains(t, f.calls, "create_order")

	uc = newOrderUseCase(f, &fakePayments{result: &service.PaymentResult{ID: "pi_2", Status: "requires_action"}}, newMemoryProfileRepo())
	_, err = uc.Checkout(context.Background(), "user-1", validCheckout())
	assert.True(t, errors.Is(err, "PAYMENT_FAILED"))
	assert.NotContains(t, f.calls, "create_order")
}

func TestCheckoutOrderFailureAfterPayment(t *testing.T) {
	f := &fakeFulfillment{table: shippingTable(), orderErr: fmt.Errorf("printify unavailable")}
	repo := newMemoryProfileRepo()
	uc := newOrderUseCase(f, &fakePayments{}, repo)

	_, err := uc.Checkout(context.Background(), "user-1", validCheckout())
	require.Error(t, err)
	assert.True(t, errors.Is(err, "ORDER_FAILED_AFTER_PAYMENT"))

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, map[string]interface{}{"payment_id": "pi_1"}, appErr.Details)
	assert.Equal(t, 0, repo.count("user-1", entity.CategoryOrders))
}

func TestCheckoutProfileFailureDoesNotFail(t *testing.T) {
	repo := newMemoryProfileRepo()
	repo.failErr = fmt.Errorf("bucket unavailable")
	uc := newOrderUseCase(&fakeFulfillment{table: shippingTable()}, &fakePayments{}, repo)

	result, err := uc.Checkout(context.Background(), "user-1", validCheckout())
	require.NoError(t, err)
	assert.Equal(t, "order_1", result.OrderID)
}
