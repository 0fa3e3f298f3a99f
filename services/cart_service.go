package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Edumoretti/chatbot-llm/catalog"
	"github.com/Edumoretti/chatbot-llm/models"
	"github.com/Edumoretti/chatbot-llm/store"
)

var (
	// ErrProductNotFound means the catalog has no record for the product id.
	ErrProductNotFound = errors.New("product not found in catalog")
	// ErrItemNotFound means the product is not in the user's cart.
	ErrItemNotFound = errors.New("item not found in cart")
)

// CartService is the catalog-enriched cart API used by the transports.
type CartService interface {
	AddToCart(ctx context.Context, userID, productID string, quantity int) (*models.CartMutationResponse, error)
	RemoveFromCart(ctx context.Context, userID, productID string) (*models.CartMutationResponse, error)
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*models.CartMutationResponse, error)
	GetCartSummary(ctx context.Context, userID string) (*models.CartSummary, error)
	ClearCart(ctx context.Context, userID string) error
}

type cartServiceImpl struct {
	engine  *store.CartEngine
	catalog catalog.Client
	logger  *zap.Logger
}

func NewCartService(engine *store.CartEngine, catalogClient catalog.Client, logger *zap.Logger) CartService {
	return &cartServiceImpl{
		engine:  engine,
		catalog: catalogClient,
		logger:  logger,
	}
}

// AddToCart resolves the product in the catalog and adds it to the cart.
// Catalog lookup and the engine write are not transactional; engine writes
// do not fail after a catalog hit, so there is nothing to roll back.
func (s *cartServiceImpl) AddToCart(ctx context.Context, userID, productID string, quantity int) (*models.CartMutationResponse, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		s.logger.Error("catalog lookup failed",
			zap.String("product_id", productID),
			zap.Error(err),
		)
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}

	item := models.CartItem{
		ProductID: productID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  quantity,
		ImageURL:  product.ImageURL,
	}
	if err := s.engine.AddItem(ctx, userID, item); err != nil {
		return nil, err
	}

	total, err := s.engine.GetTotal(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.CartMutationResponse{
		Message:   fmt.Sprintf("Adicionado %dx %s ao carrinho", quantity, product.Name),
		CartTotal: total,
	}, nil
}

func (s *cartServiceImpl) RemoveFromCart(ctx context.Context, userID, productID string) (*models.CartMutationResponse, error) {
	removed, err := s.engine.RemoveItem(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, ErrItemNotFound
	}

	total, err := s.engine.GetTotal(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.CartMutationResponse{
		Message:   "Item removido do carrinho",
		CartTotal: total,
	}, nil
}

func (s *cartServiceImpl) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*models.CartMutationResponse, error) {
	updated, err := s.engine.UpdateQuantity(ctx, userID, productID, quantity)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrItemNotFound
	}

	total, err := s.engine.GetTotal(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.CartMutationResponse{
		Message:   fmt.Sprintf("Quantidade atualizada para %d", quantity),
		CartTotal: total,
	}, nil
}

func (s *cartServiceImpl) GetCartSummary(ctx context.Context, userID string) (*models.CartSummary, error) {
	items, err := s.engine.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	total, err := s.engine.GetTotal(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalQuantity := 0
	for _, item := range items {
		totalQuantity += item.Quantity
	}

	return &models.CartSummary{
		Items:         items,
		Total:         total,
		ItemCount:     len(items),
		TotalQuantity: totalQuantity,
	}, nil
}

func (s *cartServiceImpl) ClearCart(ctx context.Context, userID string) error {
	return s.engine.ClearCart(ctx, userID)
}
