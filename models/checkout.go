package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the closed set of states a checkout session can be in.
// The first two are session-local; the rest mirror the gateway's values.
type PaymentStatus string

const (
	StatusCreated    PaymentStatus = "created"
	StatusProcessing PaymentStatus = "processing"
	StatusPending    PaymentStatus = "pending"
	StatusApproved   PaymentStatus = "approved"
	StatusRejected   PaymentStatus = "rejected"
	StatusError      PaymentStatus = "error"
)

// ParsePaymentStatus validates a status string reported by the payment
// gateway. Anything outside the closed enum is a hard error, never coerced.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case StatusPending, StatusApproved, StatusRejected, StatusError:
		return PaymentStatus(s), nil
	}
	return "", fmt.Errorf("unrecognized payment status %q", s)
}

// Terminal reports whether no further transitions can occur.
func (s PaymentStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusError
}

// CheckoutSession tracks one order from creation to terminal payment status.
// Items and Total are a snapshot of the cart at creation time; later cart
// mutations do not affect the session.
type CheckoutSession struct {
	OrderID       string          `json:"order_id"`
	UserID        string          `json:"user_id"`
	Items         []CartItem      `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
	PaymentMethod string          `json:"payment_method"`
	Status        PaymentStatus   `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	PaymentID     string          `json:"payment_id,omitempty"`
	PaymentURL    string          `json:"payment_url,omitempty"`
	Error         string          `json:"error,omitempty"`
}

type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
	Currency      string `json:"currency"`
}

// ProcessPaymentResponse is returned by POST /checkout/{order_id}/process.
type ProcessPaymentResponse struct {
	OrderID    string          `json:"order_id"`
	Status     PaymentStatus   `json:"status"`
	PaymentID  string          `json:"payment_id,omitempty"`
	PaymentURL string          `json:"payment_url,omitempty"`
	Total      decimal.Decimal `json:"total"`
}

// PaymentStatusResponse is returned by GET /checkout/{order_id}/status.
type PaymentStatusResponse struct {
	OrderID string          `json:"order_id"`
	UserID  string          `json:"user_id"`
	Status  PaymentStatus   `json:"status"`
	Total   decimal.Decimal `json:"total"`
}
