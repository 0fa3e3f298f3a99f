package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/Edumoretti/chatbot-llm/models"
	"github.com/Edumoretti/chatbot-llm/services"
	"github.com/Edumoretti/chatbot-llm/store"
)

// --- Mock catalog ---

type mockCatalog struct {
	products map[string]models.Product
	results  []models.Product
}

func (m *mockCatalog) GetProduct(_ context.Context, productID string) (*models.Product, error) {
	p, ok := m.products[productID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *mockCatalog) SearchProducts(_ context.Context, _ string) ([]models.Product, error) {
	return m.results, nil
}

func newCartService(catalog *mockCatalog) services.CartService {
	logger, _ := zap.NewDevelopment()
	engine := store.NewCartEngine(store.NewMemoryCartStore())
	return services.NewCartService(engine, catalog, logger)
}

func perfume() *mockCatalog {
	return &mockCatalog{products: map[string]models.Product{
		"p1": {
			ID:    "p1",
			Name:  "Perfume Asad",
			Price: decimal.RequireFromString("99.99"),
		},
	}}
}

// --- Tests ---

func TestAddToCart_EnrichesFromCatalog(t *testing.T) {
	svc := newCartService(perfume())

	result, err := svc.AddToCart(context.Background(), "u1", "p1", 2)
	assert.NoError(t, err)
	assert.Equal(t, "Adicionado 2x Perfume Asad ao carrinho", result.Message)
	assert.Equal(t, "199.98", result.CartTotal.String())
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	svc := newCartService(&mockCatalog{products: map[string]models.Product{}})

	_, err := svc.AddToCart(context.Background(), "u1", "ghost", 1)
	assert.ErrorIs(t, err, services.ErrProductNotFound)
}

func TestRemoveFromCart(t *testing.T) {
	svc := newCartService(perfume())
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "u1", "p1", 2)
	assert.NoError(t, err)

	result, err := svc.RemoveFromCart(ctx, "u1", "p1")
	assert.NoError(t, err)
	assert.Equal(t, "Item removido do carrinho", result.Message)
	assert.Equal(t, "0", result.CartTotal.String())
}

func TestRemoveFromCart_AbsentItem(t *testing.T) {
	svc := newCartService(perfume())

	_, err := svc.RemoveFromCart(context.Background(), "u1", "ghost")
	assert.ErrorIs(t, err, services.ErrItemNotFound)
}

func TestUpdateQuantity_AbsentItem(t *testing.T) {
	svc := newCartService(perfume())

	_, err := svc.UpdateQuantity(context.Background(), "u1", "ghost", 3)
	assert.ErrorIs(t, err, services.ErrItemNotFound)
}

func TestGetCartSummary(t *testing.T) {
	catalog := perfume()
	catalog.products["p2"] = models.Product{
		ID:    "p2",
		Name:  "Perfume Club de Nuit",
		Price: decimal.RequireFromString("150.00"),
	}
	svc := newCartService(catalog)
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "u1", "p1", 2)
	assert.NoError(t, err)
	_, err = svc.AddToCart(ctx, "u1", "p2", 1)
	assert.NoError(t, err)

	summary, err := svc.GetCartSummary(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, 2, summary.ItemCount)
	assert.Equal(t, 3, summary.TotalQuantity)
	assert.Equal(t, "349.98", summary.Total.String())
}

func TestGetCartSummary_EmptyCart(t *testing.T) {
	svc := newCartService(perfume())

	summary, err := svc.GetCartSummary(context.Background(), "nobody")
	assert.NoError(t, err)
	assert.Empty(t, summary.Items)
	assert.Equal(t, 0, summary.ItemCount)
	assert.True(t, summary.Total.IsZero())
}
