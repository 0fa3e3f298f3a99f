package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is a single product line inside a user's cart. Quantity is
// always >= 1 while the item exists; an update that would drop it to zero
// removes the line instead.
type CartItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"image_url,omitempty"`
}

// Cart holds the items of one user, keyed by product id in the stores but
// carried as a slice over the wire.
type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartSummary is the cart view returned by GET /cart/{user_id}.
type CartSummary struct {
	Items         []CartItem      `json:"items"`
	Total         decimal.Decimal `json:"total"`
	ItemCount     int             `json:"item_count"`
	TotalQuantity int             `json:"total_quantity"`
}

type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// CartMutationResponse is returned by add/remove/update cart routes.
type CartMutationResponse struct {
	Message   string          `json:"message"`
	CartTotal decimal.Decimal `json:"cart_total"`
}
