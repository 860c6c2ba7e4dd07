package service

import (
	"context"

	"github.com/shopspring/decimal"

	"fairshoppe/internal/domain/entity"
)

// PaymentRequest represents a one-shot card payment for a checkout
type PaymentRequest struct {
	Amount          decimal.Decimal // major units
	Currency        string
	PaymentMethodID string
	Description     string
	Customer        entity.CustomerInfo
	Shipping        entity.Address
}

// PaymentResult represents the state of the payment after confirmation
type PaymentResult struct {
	ID           string
	Status       string
	AmountMinor  int64
	Currency     string
	Succeeded    bool
	FailureCause string
}

// PaymentGatewayService interface for payment operations
type PaymentGatewayService interface {
	CreatePayment(ctx context.Context, req PaymentRequest) (*PaymentResult, error)
}
