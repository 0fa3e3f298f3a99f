package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Edumoretti/chatbot-llm/controllers"
	"github.com/Edumoretti/chatbot-llm/webhook"
)

// Register wires every HTTP route onto the router.
func Register(
	r *gin.Engine,
	message *controllers.MessageController,
	cart *controllers.CartController,
	checkout *controllers.CheckoutController,
	metrics *controllers.MetricsController,
	whatsapp *webhook.WhatsAppChannel,
) {
	r.POST("/message", message.ProcessMessage)
	r.DELETE("/conversation/:user_id", message.ClearConversation)

	r.POST("/cart/:user_id/add", cart.AddItem)
	r.DELETE("/cart/:user_id/items/:product_id", cart.RemoveItem)
	r.GET("/cart/:user_id", cart.GetCart)
	r.DELETE("/cart/:user_id", cart.ClearCart)

	// gin requires one param name per segment position, so both the
	// user id (create) and the order id (process/status) bind as :id.
	r.POST("/checkout/:id/create", checkout.CreateSession)
	r.POST("/checkout/:id/process", checkout.ProcessPayment)
	r.GET("/checkout/:id/status", checkout.PaymentStatus)

	r.GET("/metrics", metrics.GetMetrics)

	if whatsapp != nil {
		r.GET("/webhook/whatsapp", whatsapp.Verify)
		r.POST("/webhook/whatsapp", whatsapp.Receive)
	}
}
