package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Edumoretti/chatbot-llm/analytics"
	"github.com/Edumoretti/chatbot-llm/models"
	"github.com/Edumoretti/chatbot-llm/services"
)

var validate = validator.New()

type CheckoutController struct {
	checkout  services.CheckoutService
	analytics *analytics.Manager
}

func NewCheckoutController(checkout services.CheckoutService, analyticsManager *analytics.Manager) *CheckoutController {
	return &CheckoutController{checkout: checkout, analytics: analyticsManager}
}

// CreateSession opens a checkout session from the user's current cart.
func (cc *CheckoutController) CreateSession(c *gin.Context) {
	userID := c.Param("id")

	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid payload: " + err.Error()})
		return
	}
	if req.Currency == "" {
		req.Currency = "BRL"
	}
	if err := validate.Var(req.Currency, "len=3,alpha"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid currency code"})
		return
	}

	session, err := cc.checkout.CreateCheckoutSession(c.Request.Context(), userID, req.PaymentMethod, req.Currency)
	if err != nil {
		cc.analytics.TrackError(err, userID)
		respondError(c, err)
		return
	}

	cc.analytics.TrackCheckout(userID, session.OrderID, session.Total, "api")
	c.JSON(http.StatusOK, session)
}

// ProcessPayment submits the session's snapshot to the payment gateway.
func (cc *CheckoutController) ProcessPayment(c *gin.Context) {
	orderID := c.Param("id")

	result, err := cc.checkout.ProcessPayment(c.Request.Context(), orderID)
	if err != nil {
		cc.analytics.TrackError(err, "")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// PaymentStatus polls the gateway for the session's current status.
func (cc *CheckoutController) PaymentStatus(c *gin.Context) {
	orderID := c.Param("id")

	result, err := cc.checkout.VerifyPaymentStatus(c.Request.Context(), orderID)
	if err != nil {
		cc.analytics.TrackError(err, "")
		respondError(c, err)
		return
	}

	if result.Status == models.StatusApproved {
		cc.analytics.TrackOrderCompletion(result.UserID, orderID, result.Total, "api")
	}

	c.JSON(http.StatusOK, result)
}
