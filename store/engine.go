package store

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Edumoretti/chatbot-llm/models"
)

// CartEngine owns all cart mutation semantics on top of a CartStore.
// Mutations for the same user are serialized through a keyed mutex so that
// quantity accumulation and create-if-absent hold under concurrent requests
// from multiple channels.
type CartEngine struct {
	store CartStore

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewCartEngine(store CartStore) *CartEngine {
	return &CartEngine{
		store: store,
		locks: make(map[string]*sync.Mutex),
	}
}

func (e *CartEngine) userLock(userID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	lock, ok := e.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[userID] = lock
	}
	return lock
}

// AddItem inserts the item or, when the product is already in the cart,
// sums the quantities. Descriptive fields (name, price, image) keep their
// first-written values. The cart is created lazily for unknown users.
func (e *CartEngine) AddItem(ctx context.Context, userID string, item models.CartItem) error {
	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := e.store.Get(ctx, userID)
	if err != nil {
		return err
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID}
	}

	found := false
	for i, existing := range cart.Items {
		if existing.ProductID == item.ProductID {
			cart.Items[i].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, item)
	}

	cart.UpdatedAt = time.Now()
	return e.store.Put(ctx, cart)
}

// RemoveItem drops the product from the cart. Returns false when absent.
func (e *CartEngine) RemoveItem(ctx context.Context, userID, productID string) (bool, error) {
	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := e.store.Get(ctx, userID)
	if err != nil || cart == nil {
		return false, err
	}

	kept := cart.Items[:0]
	removed := false
	for _, item := range cart.Items {
		if item.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		return false, nil
	}

	cart.Items = kept
	cart.UpdatedAt = time.Now()
	return true, e.store.Put(ctx, cart)
}

// UpdateQuantity sets the quantity for a product already in the cart.
// A quantity <= 0 removes the item entirely. Returns false when absent.
func (e *CartEngine) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (bool, error) {
	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := e.store.Get(ctx, userID)
	if err != nil || cart == nil {
		return false, err
	}

	for i, item := range cart.Items {
		if item.ProductID != productID {
			continue
		}
		if quantity > 0 {
			cart.Items[i].Quantity = quantity
		} else {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		}
		cart.UpdatedAt = time.Now()
		return true, e.store.Put(ctx, cart)
	}
	return false, nil
}

// GetCart returns the user's items. Empty, never an error, for unknown users.
func (e *CartEngine) GetCart(ctx context.Context, userID string) ([]models.CartItem, error) {
	cart, err := e.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return []models.CartItem{}, nil
	}
	return cart.Items, nil
}

// GetTotal sums unit price times quantity over the cart. Zero for an
// empty or unknown cart.
func (e *CartEngine) GetTotal(ctx context.Context, userID string) (decimal.Decimal, error) {
	items, err := e.GetCart(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total, nil
}

// ClearCart drops the user's cart entirely.
func (e *CartEngine) ClearCart(ctx context.Context, userID string) error {
	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	return e.store.Delete(ctx, userID)
}
