package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Edumoretti/chatbot-llm/models"
)

var (
	// ErrGateway marks a failure reported by the payment provider.
	ErrGateway = errors.New("payment: gateway error")
	// ErrTimeout marks a gateway call that exceeded its deadline.
	ErrTimeout = errors.New("payment: request timed out")
)

// Request is the payment order sent to the gateway. Amount always crosses
// the wire as a decimal string.
type Request struct {
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	OrderID       string          `json:"order_id"`
	CustomerID    string          `json:"customer_id"`
	PaymentMethod string          `json:"payment_method"`
	Description   string          `json:"description,omitempty"`
}

// Result is the gateway's answer to a created payment.
type Result struct {
	PaymentID  string `json:"payment_id"`
	PaymentURL string `json:"payment_url,omitempty"`
	Status     string `json:"status,omitempty"`
}

// Gateway is the opaque payment provider the checkout state machine
// drives. Implementations must return statuses inside the closed enum.
type Gateway interface {
	CreatePayment(ctx context.Context, req Request) (*Result, error)
	GetPaymentStatus(ctx context.Context, paymentID string) (models.PaymentStatus, error)
}

type httpGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPGateway talks to a REST payment gateway with bearer auth.
func NewHTTPGateway(baseURL, apiKey string, timeout time.Duration) Gateway {
	return &httpGateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (g *httpGateway) CreatePayment(ctx context.Context, payReq Request) (*Result, error) {
	body, err := json.Marshal(payReq)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/payments", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	g.setHeaders(req)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, wrapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: create payment returned %d: %s", ErrGateway, resp.StatusCode, detail)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: invalid create payment response: %v", ErrGateway, err)
	}
	return &result, nil
}

func (g *httpGateway) GetPaymentStatus(ctx context.Context, paymentID string) (models.PaymentStatus, error) {
	endpoint := fmt.Sprintf("%s/payments/%s", g.baseURL, url.PathEscape(paymentID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	g.setHeaders(req)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", wrapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: payment status returned %d: %s", ErrGateway, resp.StatusCode, detail)
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: invalid status response: %v", ErrGateway, err)
	}

	return models.ParsePaymentStatus(payload.Status)
}

func (g *httpGateway) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")
}

func wrapTransportError(err error) error {
	var netErr interface{ Timeout() bool }
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return ErrTimeout
	}
	return fmt.Errorf("%w: %v", ErrGateway, err)
}
