package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Edumoretti/chatbot-llm/analytics"
	"github.com/Edumoretti/chatbot-llm/models"
	"github.com/Edumoretti/chatbot-llm/services"
)

type CartController struct {
	cart      services.CartService
	analytics *analytics.Manager
}

func NewCartController(cart services.CartService, analyticsManager *analytics.Manager) *CartController {
	return &CartController{cart: cart, analytics: analyticsManager}
}

// AddItem adds a catalog product to the user's cart.
func (cc *CartController) AddItem(c *gin.Context) {
	userID := c.Param("user_id")

	var req models.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid payload: " + err.Error()})
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	result, err := cc.cart.AddToCart(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		cc.analytics.TrackError(err, userID)
		respondError(c, err)
		return
	}

	cc.trackCart(c, userID)
	c.JSON(http.StatusOK, result)
}

// RemoveItem removes one product line from the cart.
func (cc *CartController) RemoveItem(c *gin.Context) {
	userID := c.Param("user_id")
	productID := c.Param("product_id")

	result, err := cc.cart.RemoveFromCart(c.Request.Context(), userID, productID)
	if err != nil {
		cc.analytics.TrackError(err, userID)
		respondError(c, err)
		return
	}

	cc.trackCart(c, userID)
	c.JSON(http.StatusOK, result)
}

// GetCart returns the cart summary.
func (cc *CartController) GetCart(c *gin.Context) {
	userID := c.Param("user_id")

	summary, err := cc.cart.GetCartSummary(c.Request.Context(), userID)
	if err != nil {
		cc.analytics.TrackError(err, userID)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ClearCart drops the user's cart entirely.
func (cc *CartController) ClearCart(c *gin.Context) {
	userID := c.Param("user_id")

	if err := cc.cart.ClearCart(c.Request.Context(), userID); err != nil {
		cc.analytics.TrackError(err, userID)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Carrinho limpo com sucesso"})
}

func (cc *CartController) trackCart(c *gin.Context, userID string) {
	summary, err := cc.cart.GetCartSummary(c.Request.Context(), userID)
	if err != nil {
		return
	}
	cc.analytics.TrackCartUpdate(userID, summary, "api")
}
