package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Edumoretti/chatbot-llm/catalog"
	"github.com/Edumoretti/chatbot-llm/payment"
	"github.com/Edumoretti/chatbot-llm/services"
)

// respondError translates domain errors into HTTP error responses with a
// {"detail": ...} body. Anything unrecognized is a 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrItemNotFound),
		errors.Is(err, services.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrAlreadyProcessed),
		errors.Is(err, services.ErrPaymentNotStarted):
		status = http.StatusBadRequest
	case errors.Is(err, payment.ErrTimeout), errors.Is(err, catalog.ErrTimeout):
		status = http.StatusGatewayTimeout
	case errors.Is(err, payment.ErrGateway):
		status = http.StatusBadGateway
	}

	c.JSON(status, gin.H{"detail": err.Error()})
}
