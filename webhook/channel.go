package webhook

import (
	"context"

	"github.com/Edumoretti/chatbot-llm/models"
)

// Channel is the contract every messaging transport implements. Core
// logic never references a concrete channel type; it only ever sees this
// interface.
type Channel interface {
	// HandleMessage processes a raw inbound event from the channel.
	HandleMessage(ctx context.Context, payload []byte) error
	// SendMessage delivers plain text to a user on the channel.
	SendMessage(ctx context.Context, userID, message string) error
	// SendProductCard delivers a rich product card with image and price.
	SendProductCard(ctx context.Context, userID string, product models.Product) error
}
