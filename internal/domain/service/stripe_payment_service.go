package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/paymentintent"

	"fairshoppe/internal/infrastructure/metrics"
	"fairshoppe/pkg/logger"
	"fairshoppe/pkg/utils"
)

const stripeVendor = "stripe"

// StripePaymentService - payment intents confirmed server-side
type StripePaymentService struct {
	intents paymentintent.Client
	hasKey  bool
}

// NewStripePaymentService builds a client bound to its own backend so tests
// and sandboxes can point baseURL at a fake API.
func NewStripePaymentService(secretKey, baseURL string) *StripePaymentService {
	backendConfig := &stripe.BackendConfig{
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelError},
	}
	if baseURL != "" {
		backendConfig.URL = stripe.String(strings.TrimRight(baseURL, "/"))
	}

	return &StripePaymentService{
		intents: paymentintent.Client{
			B:   stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig),
			Key: secretKey,
		},
		hasKey: secretKey != "",
	}
}

func (s *StripePaymentService) Configured() bool {
	return s.hasKey
}

func (s *StripePaymentService) CreatePayment(ctx context.Context, req PaymentRequest) (*PaymentResult, error) {
	started := time.Now()

	amount := utils.ToMinorUnits(req.Amount)
	if amount <= 0 {
		return nil, fmt.Errorf("payment amount must be positive, got %s", utils.FormatAmount(req.Amount))
	}

	currency := strings.ToLower(req.Currency)
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}

	logger.Info("Creating payment intent for %s %s", utils.FormatAmount(req.Amount), currency)

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethod:      stripe.String(req.PaymentMethodID),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Confirm:            stripe.Bool(true),
		Shipping: &stripe.ShippingDetailsParams{
			Name:  stripe.String(req.Customer.Name),
			Phone: stripe.String(req.Customer.Phone),
			Address: &stripe.AddressParams{
				Line1:      stripe.String(req.Shipping.Line1),
				Line2:      stripe.String(req.Shipping.Line2),
				City:       stripe.String(req.Shipping.City),
				State:      stripe.String(req.Shipping.State),
				PostalCode: stripe.String(req.Shipping.PostalCode),
				Country:    stripe.String(req.Shipping.Country),
			},
		},
	}
	if req.Customer.Email != "" {
		params.ReceiptEmail = stripe.String(req.Customer.Email)
	}
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}
	params.Context = ctx

	intent, err := s.intents.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			metrics.ObserveVendor(stripeVendor, "create_payment_intent", "http_"+fmt.Sprint(stripeErr.HTTPStatusCode), started)
			return nil, fmt.Errorf("payment declined: %s", stripeErr.Msg)
		}
		metrics.ObserveVendor(stripeVendor, "create_payment_intent", "error", started)
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	metrics.ObserveVendor(stripeVendor, "create_payment_intent", "ok", started)

	result := &PaymentResult{
		ID:          intent.ID,
		Status:      string(intent.Status),
		AmountMinor: intent.Amount,
		Currency:    string(intent.Currency),
		Succeeded:   intent.Status == stripe.PaymentIntentStatusSucceeded,
	}
	if intent.LastPaymentError != nil {
		result.FailureCause = intent.LastPaymentError.Msg
	}

	logger.Info("Payment intent %s is %s", result.ID, result.Status)
	return result, nil
}
