package ai

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Edumoretti/chatbot-llm/models"
)

const intentPrompt = `Classifique esta mensagem em UMA das categorias:

FAQ: perguntas sobre horário, funcionamento, entrega, pagamento, suporte, garantia, troca
PRODUCT_SEARCH: busca/lista de produtos, marcas, preços, compras, estoque
GENERAL: outras perguntas gerais

Mensagem: %q

Responda APENAS: FAQ, PRODUCT_SEARCH ou GENERAL`

const extractPrompt = `Extraia APENAS o nome da marca ou produto que o usuário quer buscar.

Exemplos:
- "ola, quero comprar um perfume da marca lattafa" → lattafa
- "liste todos os perfumes armaf" → armaf
- "preciso de um celular xiaomi" → xiaomi
- "mostrar produtos apple" → apple
- "buscar notebook" → notebook

Mensagem: %q

Responda APENAS com o termo de busca (marca ou produto):`

var (
	knownBrands  = []string{"lattafa", "armaf", "xiaomi", "apple", "samsung", "afnan", "chanel", "gucci", "dior"}
	productWords = []string{"produto", "comprar", "perfume", "celular", "lattafa", "armaf", "liste", "mostrar"}
	faqWords     = []string{"horario", "horário", "entrega", "pagamento", "como", "quando", "onde"}
)

// IntentDetector classifies messages and extracts search terms. It prefers
// the model and falls back to deterministic keyword matching whenever the
// model is unavailable or errors; classifier failures never surface.
type IntentDetector struct {
	client Client
	logger *zap.Logger
}

func NewIntentDetector(client Client, logger *zap.Logger) *IntentDetector {
	return &IntentDetector{client: client, logger: logger}
}

// DetectIntent maps a free-text message to one of the three intents.
func (d *IntentDetector) DetectIntent(ctx context.Context, message string) models.Intent {
	if d.client != nil {
		raw, err := d.client.Complete(ctx, fmt.Sprintf(intentPrompt, message))
		if err == nil {
			return parseIntent(raw)
		}
		d.logger.Warn("intent classification failed, using keyword fallback", zap.Error(err))
	}
	return keywordIntent(message)
}

// ExtractSearchTerm pulls the brand or product term out of a message.
func (d *IntentDetector) ExtractSearchTerm(ctx context.Context, message string) string {
	if d.client != nil {
		raw, err := d.client.Complete(ctx, fmt.Sprintf(extractPrompt, message))
		if err == nil {
			if term := strings.ToLower(strings.TrimSpace(raw)); term != "" {
				return term
			}
		} else {
			d.logger.Warn("search term extraction failed, using keyword fallback", zap.Error(err))
		}
	}
	return keywordSearchTerm(message)
}

func parseIntent(raw string) models.Intent {
	result := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case strings.Contains(result, "PRODUCT_SEARCH"):
		return models.IntentProductSearch
	case strings.Contains(result, "FAQ"):
		return models.IntentFAQ
	default:
		return models.IntentGeneral
	}
}

func keywordIntent(message string) models.Intent {
	lower := strings.ToLower(message)

	for _, word := range productWords {
		if strings.Contains(lower, word) {
			return models.IntentProductSearch
		}
	}
	for _, word := range faqWords {
		if strings.Contains(lower, word) {
			return models.IntentFAQ
		}
	}
	return models.IntentGeneral
}

func keywordSearchTerm(message string) string {
	lower := strings.ToLower(message)

	for _, brand := range knownBrands {
		if strings.Contains(lower, brand) {
			return brand
		}
	}
	if strings.Contains(lower, "perfume") {
		return "perfume"
	}
	if strings.Contains(lower, "celular") {
		return "celular"
	}
	return "perfume"
}
