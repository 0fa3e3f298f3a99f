package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/paymentintent"

	"github.com/Edumoretti/chatbot-llm/models"
)

// StripeGateway drives payments through Stripe PaymentIntents.
type StripeGateway struct{}

func NewStripeGateway(secretKey string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{}
}

func (g *StripeGateway) CreatePayment(_ context.Context, req Request) (*Result, error) {
	// Stripe wants the amount in the currency's minor unit.
	minor := req.Amount.Mul(decimal.NewFromInt(100)).IntPart()

	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(minor),
		Currency:    stripe.String(strings.ToLower(req.Currency)),
		Description: stripe.String(req.Description),
	}
	params.AddMetadata("order_id", req.OrderID)
	params.AddMetadata("customer_id", req.CustomerID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	return &Result{PaymentID: pi.ID}, nil
}

func (g *StripeGateway) GetPaymentStatus(_ context.Context, paymentID string) (models.PaymentStatus, error) {
	pi, err := paymentintent.Get(paymentID, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		return models.StatusApproved, nil
	case stripe.PaymentIntentStatusCanceled:
		return models.StatusRejected, nil
	case stripe.PaymentIntentStatusProcessing,
		stripe.PaymentIntentStatusRequiresAction,
		stripe.PaymentIntentStatusRequiresConfirmation,
		stripe.PaymentIntentStatusRequiresPaymentMethod:
		return models.StatusPending, nil
	default:
		return "", fmt.Errorf("unrecognized payment status %q", pi.Status)
	}
}
