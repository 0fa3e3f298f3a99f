package models

// Intent is the classification of a user message.
type Intent string

const (
	IntentFAQ           Intent = "faq"
	IntentProductSearch Intent = "product_search"
	IntentGeneral       Intent = "general"
)

type MessageRequest struct {
	UserID  string            `json:"user_id" binding:"required"`
	Message string            `json:"message" binding:"required"`
	Channel string            `json:"channel" binding:"required"`
	Context map[string]string `json:"context,omitempty"`
}

type MessageResponse struct {
	Response string `json:"response"`
}
