package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Edumoretti/chatbot-llm/models"
	"github.com/Edumoretti/chatbot-llm/orchestrator"
)

// WhatsAppChannel adapts WhatsApp Business API events onto the
// orchestrator and renders replies back through the messages endpoint.
type WhatsAppChannel struct {
	apiURL      string
	apiKey      string
	verifyToken string
	orch        *orchestrator.Orchestrator
	client      *http.Client
	logger      *zap.Logger
}

func NewWhatsAppChannel(
	apiURL, apiKey, verifyToken string,
	orch *orchestrator.Orchestrator,
	timeout time.Duration,
	logger *zap.Logger,
) *WhatsAppChannel {
	return &WhatsAppChannel{
		apiURL:      apiURL,
		apiKey:      apiKey,
		verifyToken: verifyToken,
		orch:        orch,
		client:      &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

type whatsAppInbound struct {
	Messages []struct {
		From string `json:"from"`
		Type string `json:"type"`
		Text struct {
			Body string `json:"body"`
		} `json:"text"`
	} `json:"messages"`
}

// HandleMessage processes one inbound WhatsApp event. Non-text events are
// ignored.
func (w *WhatsAppChannel) HandleMessage(ctx context.Context, payload []byte) error {
	var inbound whatsAppInbound
	if err := json.Unmarshal(payload, &inbound); err != nil {
		return fmt.Errorf("whatsapp: invalid payload: %w", err)
	}

	for _, msg := range inbound.Messages {
		if msg.Type != "text" {
			continue
		}

		response := w.orch.ProcessMessage(ctx, msg.From, msg.Text.Body, "whatsapp", nil)
		if err := w.SendMessage(ctx, msg.From, response); err != nil {
			return err
		}
	}
	return nil
}

func (w *WhatsAppChannel) SendMessage(ctx context.Context, userID, message string) error {
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                userID,
		"type":              "text",
		"text":              map[string]string{"body": message},
	}
	return w.post(ctx, payload)
}

func (w *WhatsAppChannel) SendProductCard(ctx context.Context, userID string, product models.Product) error {
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                userID,
		"type":              "template",
		"template": map[string]any{
			"name":     "product_card",
			"language": map[string]string{"code": "pt_BR"},
			"components": []map[string]any{
				{
					"type": "header",
					"parameters": []map[string]any{
						{"type": "image", "image": map[string]string{"link": product.ImageURL}},
					},
				},
				{
					"type": "body",
					"parameters": []map[string]any{
						{"type": "text", "text": product.Name},
						{"type": "text", "text": "R$ " + product.Price.StringFixed(2)},
						{"type": "text", "text": product.Description},
					},
				},
			},
		},
	}
	return w.post(ctx, payload)
}

func (w *WhatsAppChannel) post(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.apiURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+w.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("whatsapp api returned %d: %s", resp.StatusCode, detail)
	}
	return nil
}

// Verify answers the WhatsApp webhook subscription handshake.
func (w *WhatsAppChannel) Verify(c *gin.Context) {
	if c.Query("hub.verify_token") == w.verifyToken {
		c.String(http.StatusOK, c.Query("hub.challenge"))
		return
	}
	c.JSON(http.StatusForbidden, gin.H{"detail": "verification failed"})
}

// Receive is the gin handler for inbound webhook events.
func (w *WhatsAppChannel) Receive(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "unreadable payload"})
		return
	}

	if err := w.HandleMessage(c.Request.Context(), payload); err != nil {
		w.logger.Error("whatsapp webhook failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "processing error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
