package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Edumoretti/chatbot-llm/models"
)

func TestMemoryCartStore_GetAbsentIsNilNil(t *testing.T) {
	s := NewMemoryCartStore()

	cart, err := s.Get(context.Background(), "nobody")
	assert.NoError(t, err)
	assert.Nil(t, cart)
}

func TestMemoryCartStore_ReturnsDetachedCopies(t *testing.T) {
	s := NewMemoryCartStore()
	ctx := context.Background()

	assert.NoError(t, s.Put(ctx, &models.Cart{
		UserID: "u1",
		Items:  []models.CartItem{{ProductID: "p1", Quantity: 1}},
	}))

	first, _ := s.Get(ctx, "u1")
	first.Items[0].Quantity = 99

	second, _ := s.Get(ctx, "u1")
	assert.Equal(t, 1, second.Items[0].Quantity)
}

func TestMemoryCartStore_Delete(t *testing.T) {
	s := NewMemoryCartStore()
	ctx := context.Background()

	assert.NoError(t, s.Put(ctx, &models.Cart{UserID: "u1"}))
	assert.NoError(t, s.Delete(ctx, "u1"))

	cart, err := s.Get(ctx, "u1")
	assert.NoError(t, err)
	assert.Nil(t, cart)
}

func testSession(orderID string) *models.CheckoutSession {
	return &models.CheckoutSession{
		OrderID: orderID,
		UserID:  "u1",
		Items:   []models.CartItem{{ProductID: "p1", Quantity: 2}},
		Total:   decimal.RequireFromString("199.98"),
		Status:  models.StatusCreated,
	}
}

func TestMemorySessionStore_RoundTrip(t *testing.T) {
	s := NewMemorySessionStore(0)
	ctx := context.Background()

	assert.NoError(t, s.Put(ctx, testSession("order-1")))

	session, err := s.Get(ctx, "order-1")
	assert.NoError(t, err)
	assert.Equal(t, "order-1", session.OrderID)
	assert.Equal(t, "199.98", session.Total.String())
}

func TestMemorySessionStore_AbsentIsNilNil(t *testing.T) {
	s := NewMemorySessionStore(0)

	session, err := s.Get(context.Background(), "ghost")
	assert.NoError(t, err)
	assert.Nil(t, session)
}

func TestMemorySessionStore_TTLEvictsOnRead(t *testing.T) {
	s := NewMemorySessionStore(10 * time.Millisecond)
	ctx := context.Background()

	assert.NoError(t, s.Put(ctx, testSession("order-1")))
	time.Sleep(30 * time.Millisecond)

	session, err := s.Get(ctx, "order-1")
	assert.NoError(t, err)
	assert.Nil(t, session)
}

func TestMemorySessionStore_ZeroTTLNeverExpires(t *testing.T) {
	s := NewMemorySessionStore(0)
	ctx := context.Background()

	assert.NoError(t, s.Put(ctx, testSession("order-1")))
	time.Sleep(20 * time.Millisecond)

	session, err := s.Get(ctx, "order-1")
	assert.NoError(t, err)
	assert.NotNil(t, session)
}

func TestMemorySessionStore_ReturnsDetachedCopies(t *testing.T) {
	s := NewMemorySessionStore(0)
	ctx := context.Background()

	assert.NoError(t, s.Put(ctx, testSession("order-1")))

	first, _ := s.Get(ctx, "order-1")
	first.Status = models.StatusApproved
	first.Items[0].Quantity = 99

	second, _ := s.Get(ctx, "order-1")
	assert.Equal(t, models.StatusCreated, second.Status)
	assert.Equal(t, 2, second.Items[0].Quantity)
}
