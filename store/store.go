package store

import (
	"context"

	"github.com/Edumoretti/chatbot-llm/models"
)

// CartStore persists one cart per user. Get returns (nil, nil) when the
// user has no cart. Implementations must be safe for concurrent use; the
// CartEngine serializes mutations per user on top of them.
type CartStore interface {
	Get(ctx context.Context, userID string) (*models.Cart, error)
	Put(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, userID string) error
}

// SessionStore persists checkout sessions keyed by order id. Get returns
// (nil, nil) when the order is unknown.
type SessionStore interface {
	Get(ctx context.Context, orderID string) (*models.CheckoutSession, error)
	Put(ctx context.Context, session *models.CheckoutSession) error
	Delete(ctx context.Context, orderID string) error
}
