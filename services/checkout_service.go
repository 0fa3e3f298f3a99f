package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Edumoretti/chatbot-llm/models"
	"github.com/Edumoretti/chatbot-llm/payment"
	"github.com/Edumoretti/chatbot-llm/store"
)

var (
	// ErrEmptyCart means checkout was attempted with no items in the cart.
	ErrEmptyCart = errors.New("checkout: cart is empty")
	// ErrSessionNotFound means the order id is unknown.
	ErrSessionNotFound = errors.New("checkout: session not found")
	// ErrAlreadyProcessed means the session already left the created state.
	ErrAlreadyProcessed = errors.New("checkout: session already processed")
	// ErrPaymentNotStarted means status was polled before ProcessPayment.
	ErrPaymentNotStarted = errors.New("checkout: payment not started")
)

// CheckoutService drives an order through the linear state machine
// created -> processing -> {approved, rejected, error}.
type CheckoutService interface {
	CreateCheckoutSession(ctx context.Context, userID, paymentMethod, currency string) (*models.CheckoutSession, error)
	ProcessPayment(ctx context.Context, orderID string) (*models.ProcessPaymentResponse, error)
	VerifyPaymentStatus(ctx context.Context, orderID string) (*models.PaymentStatusResponse, error)
}

type checkoutServiceImpl struct {
	cart     CartService
	sessions store.SessionStore
	gateway  payment.Gateway
	logger   *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewCheckoutService(
	cart CartService,
	sessions store.SessionStore,
	gateway payment.Gateway,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		cart:     cart,
		sessions: sessions,
		gateway:  gateway,
		logger:   logger,
		locks:    make(map[string]*sync.Mutex),
	}
}

// orderLock serializes the read-check-write cycle per order id, so the
// status guard in ProcessPayment holds under concurrent requests.
func (s *checkoutServiceImpl) orderLock(orderID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[orderID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[orderID] = lock
	}
	return lock
}

// CreateCheckoutSession snapshots the current cart into a new session.
// Later cart mutations do not affect the snapshot.
func (s *checkoutServiceImpl) CreateCheckoutSession(ctx context.Context, userID, paymentMethod, currency string) (*models.CheckoutSession, error) {
	summary, err := s.cart.GetCartSummary(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(summary.Items) == 0 {
		return nil, ErrEmptyCart
	}

	session := &models.CheckoutSession{
		OrderID:       uuid.NewString(),
		UserID:        userID,
		Items:         append([]models.CartItem(nil), summary.Items...),
		Total:         summary.Total,
		Currency:      currency,
		PaymentMethod: paymentMethod,
		Status:        models.StatusCreated,
		CreatedAt:     time.Now(),
	}

	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("checkout session created",
		zap.String("order_id", session.OrderID),
		zap.String("user_id", userID),
		zap.String("total", session.Total.String()),
	)
	return session, nil
}

// ProcessPayment sends the snapshot to the gateway. Not idempotent by
// design: a second call on the same order fails with ErrAlreadyProcessed.
// On gateway failure the session moves to error AND the failure is
// returned; the session is never retried automatically.
func (s *checkoutServiceImpl) ProcessPayment(ctx context.Context, orderID string) (*models.ProcessPaymentResponse, error) {
	lock := s.orderLock(orderID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.sessions.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.Status != models.StatusCreated {
		return nil, ErrAlreadyProcessed
	}

	payReq := payment.Request{
		Amount:        session.Total,
		Currency:      session.Currency,
		OrderID:       session.OrderID,
		CustomerID:    session.UserID,
		PaymentMethod: session.PaymentMethod,
		Description:   fmt.Sprintf("Pedido %s", session.OrderID),
	}

	result, err := s.gateway.CreatePayment(ctx, payReq)
	if err != nil {
		session.Status = models.StatusError
		session.Error = err.Error()
		if putErr := s.sessions.Put(ctx, session); putErr != nil {
			s.logger.Error("failed to record gateway error on session",
				zap.String("order_id", orderID),
				zap.Error(putErr),
			)
		}
		return nil, fmt.Errorf("process payment: %w", err)
	}

	session.Status = models.StatusProcessing
	session.PaymentID = result.PaymentID
	session.PaymentURL = result.PaymentURL
	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("payment created",
		zap.String("order_id", orderID),
		zap.String("payment_id", session.PaymentID),
	)

	return &models.ProcessPaymentResponse{
		OrderID:    session.OrderID,
		Status:     session.Status,
		PaymentID:  session.PaymentID,
		PaymentURL: session.PaymentURL,
		Total:      session.Total,
	}, nil
}

// VerifyPaymentStatus polls the gateway and adopts whatever status it
// reports. An approved payment clears the user's cart as a side effect;
// the clear and the status write are not one atomic transition.
func (s *checkoutServiceImpl) VerifyPaymentStatus(ctx context.Context, orderID string) (*models.PaymentStatusResponse, error) {
	lock := s.orderLock(orderID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.sessions.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.PaymentID == "" {
		return nil, ErrPaymentNotStarted
	}

	status, err := s.gateway.GetPaymentStatus(ctx, session.PaymentID)
	if err != nil {
		return nil, fmt.Errorf("verify payment status: %w", err)
	}

	if status == models.StatusApproved {
		if err := s.cart.ClearCart(ctx, session.UserID); err != nil {
			s.logger.Error("failed to clear cart after approval",
				zap.String("order_id", orderID),
				zap.String("user_id", session.UserID),
				zap.Error(err),
			)
		}
	}

	session.Status = status
	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, err
	}

	return &models.PaymentStatusResponse{
		OrderID: session.OrderID,
		UserID:  session.UserID,
		Status:  session.Status,
		Total:   session.Total,
	}, nil
}
