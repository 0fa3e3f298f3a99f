package analytics

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Edumoretti/chatbot-llm/models"
)

// EventType labels the analytics events emitted by the bot.
type EventType string

const (
	EventMessageReceived EventType = "message_received"
	EventMessageSent     EventType = "message_sent"
	EventCartUpdated     EventType = "cart_updated"
	EventCheckoutStarted EventType = "checkout_started"
	EventOrderCompleted  EventType = "order_completed"
	EventError           EventType = "error"
)

// Manager emits structured analytics events and keeps aggregate counters
// for the /metrics endpoint.
type Manager struct {
	logger *zap.Logger

	mu      sync.Mutex
	metrics metrics
}

type metrics struct {
	MessagesTotal     int            `json:"messages_total"`
	MessagesByChannel map[string]int `json:"messages_by_channel"`
	CartUpdates       int            `json:"cart_updates"`
	CheckoutsStarted  int            `json:"checkouts_started"`
	OrdersCompleted   int            `json:"orders_completed"`
	ErrorsTotal       int            `json:"errors_total"`
	ErrorsByType      map[string]int `json:"errors_by_type"`
}

func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		logger: logger,
		metrics: metrics{
			MessagesByChannel: make(map[string]int),
			ErrorsByType:      make(map[string]int),
		},
	}
}

func (m *Manager) TrackMessage(userID, message, channel string, incoming bool) {
	event := EventMessageSent
	if incoming {
		event = EventMessageReceived
	}

	m.logger.Info(string(event),
		zap.String("user_id", userID),
		zap.String("channel", channel),
		zap.Int("length", len(message)),
	)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.metrics.MessagesTotal++
	m.metrics.MessagesByChannel[channel]++
}

func (m *Manager) TrackCartUpdate(userID string, summary *models.CartSummary, channel string) {
	m.logger.Info(string(EventCartUpdated),
		zap.String("user_id", userID),
		zap.String("channel", channel),
		zap.Int("item_count", summary.ItemCount),
		zap.String("total", summary.Total.String()),
	)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.metrics.CartUpdates++
}

func (m *Manager) TrackCheckout(userID, orderID string, total decimal.Decimal, channel string) {
	m.logger.Info(string(EventCheckoutStarted),
		zap.String("user_id", userID),
		zap.String("order_id", orderID),
		zap.String("total", total.String()),
		zap.String("channel", channel),
	)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.metrics.CheckoutsStarted++
}

func (m *Manager) TrackOrderCompletion(userID, orderID string, total decimal.Decimal, channel string) {
	m.logger.Info(string(EventOrderCompleted),
		zap.String("user_id", userID),
		zap.String("order_id", orderID),
		zap.String("total", total.String()),
		zap.String("channel", channel),
	)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.metrics.OrdersCompleted++
}

func (m *Manager) TrackError(err error, userID string) {
	m.logger.Error(string(EventError),
		zap.String("user_id", userID),
		zap.Error(err),
	)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.metrics.ErrorsTotal++
	m.metrics.ErrorsByType[errorKind(err)]++
}

// errorKind unwraps to the root sentinel so counter keys stay stable;
// wrapped messages carry order and product ids that would otherwise make
// every occurrence a fresh key.
func errorKind(err error) string {
	if err == nil {
		return "unknown"
	}
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

// Metrics returns a snapshot of the aggregate counters.
func (m *Manager) Metrics() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()

	byChannel := make(map[string]int, len(m.metrics.MessagesByChannel))
	for k, v := range m.metrics.MessagesByChannel {
		byChannel[k] = v
	}
	byType := make(map[string]int, len(m.metrics.ErrorsByType))
	for k, v := range m.metrics.ErrorsByType {
		byType[k] = v
	}

	return map[string]any{
		"messages": map[string]any{
			"total":      m.metrics.MessagesTotal,
			"by_channel": byChannel,
		},
		"carts": map[string]any{
			"updates": m.metrics.CartUpdates,
		},
		"orders": map[string]any{
			"started":   m.metrics.CheckoutsStarted,
			"completed": m.metrics.OrdersCompleted,
		},
		"errors": map[string]any{
			"total":   m.metrics.ErrorsTotal,
			"by_type": byType,
		},
	}
}
