package orchestrator

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Edumoretti/chatbot-llm/ai"
	"github.com/Edumoretti/chatbot-llm/catalog"
	"github.com/Edumoretti/chatbot-llm/faq"
	"github.com/Edumoretti/chatbot-llm/models"
)

// apologyMessage is the only thing a user ever sees when something inside
// the router fails. No error escapes to the transport layer.
const apologyMessage = "Desculpe, ocorreu um erro ao processar sua mensagem. Por favor, tente novamente."

const systemPrompt = "Você é um assistente virtual de uma loja online. Responda de forma curta e amigável, em português."

// maxListedProducts caps how many search results are rendered per reply.
const maxListedProducts = 5

// Orchestrator routes a free-text message to the FAQ store, the product
// catalog or the general dialogue model, and renders the final reply.
type Orchestrator struct {
	detector *ai.IntentDetector
	aiClient ai.Client
	faqStore faq.Store
	catalog  catalog.Client
	logger   *zap.Logger

	mu            sync.Mutex
	conversations map[string][]ai.Message
}

func New(
	detector *ai.IntentDetector,
	aiClient ai.Client,
	faqStore faq.Store,
	catalogClient catalog.Client,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		detector:      detector,
		aiClient:      aiClient,
		faqStore:      faqStore,
		catalog:       catalogClient,
		logger:        logger,
		conversations: make(map[string][]ai.Message),
	}
}

// ProcessMessage classifies and answers one user message. It never fails:
// any error on any path is logged and collapsed into the apology message.
func (o *Orchestrator) ProcessMessage(ctx context.Context, userID, message, channel string, extra map[string]string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("panic while processing message",
				zap.String("user_id", userID),
				zap.Any("panic", r),
			)
			reply = apologyMessage
		}
	}()

	input := message
	if len(extra) > 0 {
		input = fmt.Sprintf("Contexto: %s\nMensagem: %s", formatContext(extra), message)
	}

	intent := o.detector.DetectIntent(ctx, message)
	o.logger.Info("message classified",
		zap.String("user_id", userID),
		zap.String("channel", channel),
		zap.String("intent", string(intent)),
	)

	switch intent {
	case models.IntentFAQ:
		answer, ok, err := o.faqStore.Search(ctx, message)
		if err != nil {
			o.logger.Warn("faq lookup failed, falling through to general", zap.Error(err))
		}
		if ok {
			return answer
		}
		// No confident match: fall through to general dialogue rather
		// than answering "not found".
		return o.generalReply(ctx, userID, input)

	case models.IntentProductSearch:
		return o.productSearchReply(ctx, userID, message)

	default:
		return o.generalReply(ctx, userID, input)
	}
}

func (o *Orchestrator) productSearchReply(ctx context.Context, userID, message string) string {
	term := o.detector.ExtractSearchTerm(ctx, message)

	products, err := o.catalog.SearchProducts(ctx, term)
	if err != nil {
		o.logger.Error("catalog search failed",
			zap.String("user_id", userID),
			zap.String("term", term),
			zap.Error(err),
		)
		return apologyMessage
	}

	if len(products) == 0 {
		return fmt.Sprintf("Não encontrei produtos para '%s'. Tente buscar por outra marca ou categoria.", term)
	}

	if len(products) > maxListedProducts {
		products = products[:maxListedProducts]
	}

	// Keyword-only mode still lists products, just without the model's prose.
	if o.aiClient == nil {
		return plainListing(products)
	}

	var sb strings.Builder
	sb.WriteString("Apresente estes produtos ao cliente de forma curta e natural, em português, com nome e preço:\n")
	for _, p := range products {
		fmt.Fprintf(&sb, "- %s: R$ %s\n", p.Name, p.Price.StringFixed(2))
	}

	listing, err := o.aiClient.Complete(ctx, sb.String())
	if err != nil {
		o.logger.Error("product listing generation failed", zap.Error(err))
		return apologyMessage
	}
	return listing
}

func plainListing(products []models.Product) string {
	var sb strings.Builder
	sb.WriteString("Encontrei estes produtos:\n")
	for _, p := range products {
		fmt.Fprintf(&sb, "- %s: R$ %s\n", p.Name, p.Price.StringFixed(2))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func (o *Orchestrator) generalReply(ctx context.Context, userID, input string) string {
	if o.aiClient == nil {
		return apologyMessage
	}

	history := o.appendHistory(userID, ai.Message{Role: "user", Text: input})

	reply, err := o.aiClient.Chat(ctx, history)
	if err != nil {
		o.logger.Error("general dialogue failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return apologyMessage
	}

	o.appendHistory(userID, ai.Message{Role: "assistant", Text: reply})
	return reply
}

// appendHistory records a turn in the per-user conversation memory and
// returns the full history including the new turn. Memory grows unbounded
// until ClearConversation.
func (o *Orchestrator) appendHistory(userID string, msg ai.Message) []ai.Message {
	o.mu.Lock()
	defer o.mu.Unlock()

	history, ok := o.conversations[userID]
	if !ok {
		history = []ai.Message{{Role: "system", Text: systemPrompt}}
	}
	history = append(history, msg)
	o.conversations[userID] = history

	return append([]ai.Message(nil), history...)
}

// ClearConversation drops the user's conversational memory.
func (o *Orchestrator) ClearConversation(userID string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	delete(o.conversations, userID)
}

func formatContext(extra map[string]string) string {
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+extra[k])
	}
	return strings.Join(parts, ", ")
}
